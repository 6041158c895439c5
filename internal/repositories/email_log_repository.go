package repositories

import (
	"context"
	"fmt"

	"accountd/internal/models"
	"accountd/internal/storage"
)

type EmailLogRepository interface {
	Insert(ctx context.Context, q storage.Querier, logEntry *models.EmailLog) error
}

type emailLogRepository struct{}

func NewEmailLogRepository() EmailLogRepository {
	return &emailLogRepository{}
}

func (r *emailLogRepository) Insert(ctx context.Context, q storage.Querier, logEntry *models.EmailLog) error {
	const query = `
		INSERT INTO email_logs (id, user_id, message_id, sender_address, target_address, subject, body_type, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	if err := q.QueryRowContext(ctx, query,
		logEntry.ID, logEntry.UserID, logEntry.MessageID, logEntry.SenderAddress,
		logEntry.TargetAddress, logEntry.Subject, logEntry.BodyType, logEntry.Body,
	).Scan(&logEntry.CreatedAt); err != nil {
		return fmt.Errorf("email_log insert: %w", err)
	}
	return nil
}
