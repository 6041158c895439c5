package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"accountd/internal/models"
	"accountd/internal/storage"
)

type fakeMailer struct {
	sent []struct{ to, subject, body string }
	err  error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, struct{ to, subject, body string }{to, subject, htmlBody})
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

type fakeEmailLogRepo struct {
	logs []*models.EmailLog
}

func (r *fakeEmailLogRepo) Insert(_ context.Context, _ storage.Querier, logEntry *models.EmailLog) error {
	r.logs = append(r.logs, logEntry)
	return nil
}

func TestEmailServiceRecordsAcceptedDeliveries(t *testing.T) {
	mailer := &fakeMailer{}
	logs := &fakeEmailLogRepo{}
	svc := NewEmailService(mailer, "no-reply@example.com", logs)
	ctx := context.Background()

	user := &models.User{ID: "u-1", FirstName: "Ada", Email: "ada@example.com"}
	if err := svc.SendWelcomeEmail(ctx, nil, user); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if err := svc.SendResetPasswordEmail(ctx, nil, user, nil, "AbCd1234"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := svc.SendVerificationEmail(ctx, nil, "new@example.com", nil, "493021"); err != nil {
		t.Fatalf("verification: %v", err)
	}

	if len(mailer.sent) != 3 || len(logs.logs) != 3 {
		t.Fatalf("sent=%d logged=%d, want 3/3", len(mailer.sent), len(logs.logs))
	}

	if !strings.Contains(mailer.sent[1].body, "AbCd1234") {
		t.Error("reset email body missing the OTP")
	}
	if !strings.Contains(mailer.sent[2].body, "493021") {
		t.Error("verification email body missing the OTP")
	}

	if logs.logs[0].UserID == nil || *logs.logs[0].UserID != "u-1" {
		t.Error("welcome log not attributed to the user")
	}
	if logs.logs[2].UserID != nil {
		t.Error("verification log should not carry a user id")
	}
	for i, entry := range logs.logs {
		if entry.MessageID == "" {
			t.Errorf("log %d missing message id", i)
		}
		if entry.SenderAddress != "no-reply@example.com" {
			t.Errorf("log %d sender = %q", i, entry.SenderAddress)
		}
	}
}

func TestEmailServiceDoesNotLogFailedDeliveries(t *testing.T) {
	mailer := &fakeMailer{err: fmt.Errorf("connection refused")}
	logs := &fakeEmailLogRepo{}
	svc := NewEmailService(mailer, "no-reply@example.com", logs)

	user := &models.User{ID: "u-1", FirstName: "Ada", Email: "ada@example.com"}
	if err := svc.SendWelcomeEmail(context.Background(), nil, user); err == nil {
		t.Fatal("expected delivery error")
	}
	if len(logs.logs) != 0 {
		t.Errorf("failed delivery was logged: %d entries", len(logs.logs))
	}
}
