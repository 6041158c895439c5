package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"accountd/internal/models"
	"accountd/internal/storage"
)

// PasswordResetRepository is the append-style password-reset ledger. Rows are
// never deleted; a consumed or superseded code is flipped to not-usable.
type PasswordResetRepository interface {
	Insert(ctx context.Context, q storage.Querier, req *models.PasswordResetRequest) error
	SelectLatestByUserID(ctx context.Context, q storage.Querier, userID string) (*models.PasswordResetRequest, error)
	Invalidate(ctx context.Context, q storage.Querier, id string) error
}

type passwordResetRepository struct{}

func NewPasswordResetRepository() PasswordResetRepository {
	return &passwordResetRepository{}
}

func (r *passwordResetRepository) Insert(ctx context.Context, q storage.Querier, req *models.PasswordResetRequest) error {
	const query = `
		INSERT INTO password_resets (id, user_id, email, request_ip, otp_hash, is_otp_usable)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := q.QueryRowContext(ctx, query,
		req.ID, req.UserID, req.Email, req.RequestIP, req.OtpHash, req.IsOtpUsable,
	).Scan(&req.CreatedAt); err != nil {
		return fmt.Errorf("password_reset insert: %w", err)
	}
	return nil
}

// SelectLatestByUserID returns the most recent ledger row for the user; all
// policy decisions are driven by this single row.
func (r *passwordResetRepository) SelectLatestByUserID(ctx context.Context, q storage.Querier, userID string) (*models.PasswordResetRequest, error) {
	const query = `
		SELECT id, user_id, email, request_ip, otp_hash, is_otp_usable, created_at
		FROM password_resets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := q.QueryRowContext(ctx, query, userID)
	pr := &models.PasswordResetRequest{}
	var ip sql.NullString
	if err := row.Scan(&pr.ID, &pr.UserID, &pr.Email, &ip, &pr.OtpHash, &pr.IsOtpUsable, &pr.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("password_reset latest: %w", err)
	}
	if ip.Valid {
		pr.RequestIP = &ip.String
	}
	return pr, nil
}

func (r *passwordResetRepository) Invalidate(ctx context.Context, q storage.Querier, id string) error {
	const query = `
		UPDATE password_resets SET is_otp_usable = FALSE WHERE id = $1
	`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("password_reset invalidate: %w", err)
	}
	return nil
}
