package services

import (
	"context"
	"fmt"
	"time"

	"accountd/internal/models"
	"accountd/internal/storage"
)

// fakeTxRunner runs the closure directly; repository fakes ignore the scope.
type fakeTxRunner struct{}

func (fakeTxRunner) RunTx(_ context.Context, fn func(q storage.Querier) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ storage.Querier, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, _ storage.Querier, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, _ storage.Querier, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %q", user.Email)
		}
	}
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, _ storage.Querier, userID, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("no user %q", userID)
}

type fakeResetRepo struct {
	rows []*models.PasswordResetRequest
}

func (r *fakeResetRepo) Insert(_ context.Context, _ storage.Querier, req *models.PasswordResetRequest) error {
	req.CreatedAt = time.Now()
	r.rows = append(r.rows, req)
	return nil
}

func (r *fakeResetRepo) SelectLatestByUserID(_ context.Context, _ storage.Querier, userID string) (*models.PasswordResetRequest, error) {
	var latest *models.PasswordResetRequest
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			latest = row
		}
	}
	return latest, nil
}

func (r *fakeResetRepo) Invalidate(_ context.Context, _ storage.Querier, id string) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.IsOtpUsable = false
			return nil
		}
	}
	return fmt.Errorf("no reset row %q", id)
}

func (r *fakeResetRepo) usableCount() int {
	n := 0
	for _, row := range r.rows {
		if row.IsOtpUsable {
			n++
		}
	}
	return n
}

type fakeVerificationRepo struct {
	rows []*models.EmailVerificationRequest
}

func (r *fakeVerificationRepo) Insert(_ context.Context, _ storage.Querier, req *models.EmailVerificationRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.ReqDateTime = now
	req.UpdatedAt = now
	r.rows = append(r.rows, req)
	return nil
}

func (r *fakeVerificationRepo) SelectLatestByEmail(_ context.Context, _ storage.Querier, email string) (*models.EmailVerificationRequest, error) {
	var latest *models.EmailVerificationRequest
	for _, row := range r.rows {
		if row.Email != email {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			latest = row
		}
	}
	return latest, nil
}

func (r *fakeVerificationRepo) Invalidate(_ context.Context, _ storage.Querier, id string) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.IsOtpUsable = false
			row.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("no verification row %q", id)
}

func (r *fakeVerificationRepo) TouchRequestTime(_ context.Context, _ storage.Querier, id string) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.ReqDateTime = time.Now()
			row.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("no verification row %q", id)
}

func (r *fakeVerificationRepo) usableCount() int {
	n := 0
	for _, row := range r.rows {
		if row.IsOtpUsable {
			n++
		}
	}
	return n
}

type sentEmail struct {
	to  string
	otp string
}

// fakeEmailSender implements EmailService and records every delivery.
type fakeEmailSender struct {
	welcome        []string
	resetOtps      []sentEmail
	verifyOtps     []sentEmail
	failWelcome    bool
	failDeliveries bool
}

func (e *fakeEmailSender) SendWelcomeEmail(_ context.Context, _ storage.Querier, user *models.User) error {
	if e.failWelcome {
		return fmt.Errorf("smtp unavailable")
	}
	e.welcome = append(e.welcome, user.Email)
	return nil
}

func (e *fakeEmailSender) SendResetPasswordEmail(_ context.Context, _ storage.Querier, user *models.User, _ *string, otp string) error {
	if e.failDeliveries {
		return fmt.Errorf("smtp unavailable")
	}
	e.resetOtps = append(e.resetOtps, sentEmail{to: user.Email, otp: otp})
	return nil
}

func (e *fakeEmailSender) SendVerificationEmail(_ context.Context, _ storage.Querier, email string, _ *string, otp string) error {
	if e.failDeliveries {
		return fmt.Errorf("smtp unavailable")
	}
	e.verifyOtps = append(e.verifyOtps, sentEmail{to: email, otp: otp})
	return nil
}
