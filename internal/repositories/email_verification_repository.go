package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"accountd/internal/models"
	"accountd/internal/storage"
)

// EmailVerificationRepository is the email-verification ledger. req_date_time
// tracks the last delivery and moves independently of the stored code, which
// is what makes resend-without-rotation possible.
type EmailVerificationRepository interface {
	Insert(ctx context.Context, q storage.Querier, req *models.EmailVerificationRequest) error
	SelectLatestByEmail(ctx context.Context, q storage.Querier, email string) (*models.EmailVerificationRequest, error)
	Invalidate(ctx context.Context, q storage.Querier, id string) error
	TouchRequestTime(ctx context.Context, q storage.Querier, id string) error
}

type emailVerificationRepository struct{}

func NewEmailVerificationRepository() EmailVerificationRepository {
	return &emailVerificationRepository{}
}

func (r *emailVerificationRepository) Insert(ctx context.Context, q storage.Querier, req *models.EmailVerificationRequest) error {
	const query = `
		INSERT INTO email_verifications (id, email, request_ip, otp, is_otp_usable, req_date_time)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING req_date_time, created_at, updated_at
	`
	if err := q.QueryRowContext(ctx, query,
		req.ID, req.Email, req.RequestIP, req.Otp, req.IsOtpUsable,
	).Scan(&req.ReqDateTime, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return fmt.Errorf("email_verification insert: %w", err)
	}
	return nil
}

func (r *emailVerificationRepository) SelectLatestByEmail(ctx context.Context, q storage.Querier, email string) (*models.EmailVerificationRequest, error) {
	const query = `
		SELECT id, email, request_ip, otp, is_otp_usable, req_date_time, created_at, updated_at
		FROM email_verifications
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := q.QueryRowContext(ctx, query, email)
	ev := &models.EmailVerificationRequest{}
	var ip sql.NullString
	if err := row.Scan(&ev.ID, &ev.Email, &ip, &ev.Otp, &ev.IsOtpUsable, &ev.ReqDateTime, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("email_verification latest: %w", err)
	}
	if ip.Valid {
		ev.RequestIP = &ip.String
	}
	return ev, nil
}

func (r *emailVerificationRepository) Invalidate(ctx context.Context, q storage.Querier, id string) error {
	const query = `
		UPDATE email_verifications SET is_otp_usable = FALSE, updated_at = NOW() WHERE id = $1
	`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("email_verification invalidate: %w", err)
	}
	return nil
}

// TouchRequestTime records a resend: the code stays as-is, only the
// last-sent timestamp moves.
func (r *emailVerificationRepository) TouchRequestTime(ctx context.Context, q storage.Querier, id string) error {
	const query = `
		UPDATE email_verifications SET req_date_time = NOW(), updated_at = NOW() WHERE id = $1
	`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("email_verification touch: %w", err)
	}
	return nil
}
