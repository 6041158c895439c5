package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"accountd/internal/models"
	"accountd/internal/repositories"
	"accountd/internal/storage"
)

// Mailer is the outbound delivery contract: one message in, the provider
// message id out. Delivery is fire-and-forget; bounces are not tracked.
type Mailer interface {
	Send(to, subject, htmlBody string) (messageID string, err error)
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (m *smtpMailer) Send(to, subject, htmlBody string) (string, error) {
	messageID := uuid.NewString()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-Id", fmt.Sprintf("<%s@accountd>", messageID))
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("send email to %s: %w", to, err)
	}
	return messageID, nil
}

// EmailService composes the three transactional emails the flows need and
// records every accepted delivery in the email_logs ledger. The ledger write
// shares the caller's transaction scope.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, q storage.Querier, user *models.User) error
	SendResetPasswordEmail(ctx context.Context, q storage.Querier, user *models.User, requestIP *string, otp string) error
	SendVerificationEmail(ctx context.Context, q storage.Querier, email string, requestIP *string, otp string) error
}

type emailService struct {
	mailer Mailer
	from   string
	logs   repositories.EmailLogRepository
}

func NewEmailService(mailer Mailer, fromEmail string, logs repositories.EmailLogRepository) EmailService {
	return &emailService{
		mailer: mailer,
		from:   fromEmail,
		logs:   logs,
	}
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, q storage.Querier, user *models.User) error {
	subject := "Welcome!"
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Thank you for signing up. Your account has been created.</p>
		<p>Best regards,<br>The Team</p>
	`, user.FirstName)

	return s.deliver(ctx, q, &user.ID, user.Email, subject, body)
}

func (s *emailService) SendResetPasswordEmail(ctx context.Context, q storage.Querier, user *models.User, requestIP *string, otp string) error {
	subject := "Password reset request"
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request from %s to reset the password for your account.</p>
		<p>Your OTP: <strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, ipOrUnknown(requestIP), otp)

	return s.deliver(ctx, q, &user.ID, user.Email, subject, body)
}

func (s *emailService) SendVerificationEmail(ctx context.Context, q storage.Querier, email string, requestIP *string, otp string) error {
	subject := "Verify your email"
	body := fmt.Sprintf(`
		<h3>Email verification</h3>
		<p>We received an email verification request from %s.</p>
		<p>Your OTP: <strong>%s</strong></p>
	`, ipOrUnknown(requestIP), otp)

	return s.deliver(ctx, q, nil, email, subject, body)
}

func (s *emailService) deliver(ctx context.Context, q storage.Querier, userID *string, to, subject, body string) error {
	messageID, err := s.mailer.Send(to, subject, body)
	if err != nil {
		return err
	}

	return s.logs.Insert(ctx, q, &models.EmailLog{
		ID:            uuid.NewString(),
		UserID:        userID,
		MessageID:     messageID,
		SenderAddress: s.from,
		TargetAddress: to,
		Subject:       subject,
		BodyType:      "html",
		Body:          body,
	})
}

func ipOrUnknown(ip *string) string {
	if ip == nil || *ip == "" {
		return "an unknown address"
	}
	return *ip
}
