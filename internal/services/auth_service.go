package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"accountd/internal/config"
	"accountd/internal/models"
	"accountd/internal/otp"
	"accountd/internal/repositories"
	"accountd/internal/result"
	"accountd/internal/security"
	"accountd/internal/storage"
)

// Message is the data payload of flows that succeed with a human-readable
// confirmation only.
type Message struct {
	Message string `json:"message"`
}

type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) result.Result[*models.SignUpResult]
	SignIn(ctx context.Context, req models.SignInRequest) result.Result[*models.TokenPair]
	RenewAccessToken(ctx context.Context, refreshToken string) result.Result[*models.TokenPair]
	RequestResetPassword(ctx context.Context, email string, requestIP *string) result.Result[any]
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) result.Result[*Message]
}

type authService struct {
	tx       storage.TxRunner
	users    repositories.UserRepository
	resets   repositories.PasswordResetRepository
	emails   EmailService
	issuer   *security.TokenIssuer
	resetCfg config.OtpConfig

	now func() time.Time
}

func NewAuthService(
	tx storage.TxRunner,
	users repositories.UserRepository,
	resets repositories.PasswordResetRepository,
	emails EmailService,
	issuer *security.TokenIssuer,
	resetCfg config.OtpConfig,
) AuthService {
	return &authService{
		tx:       tx,
		users:    users,
		resets:   resets,
		emails:   emails,
		issuer:   issuer,
		resetCfg: resetCfg,
		now:      time.Now,
	}
}

// SignUp creates the user, issues a token pair and sends the welcome email.
// The uniqueness check and the insert share one transaction so concurrent
// signups for the same email cannot both pass the check.
func (s *authService) SignUp(ctx context.Context, req models.SignUpRequest) result.Result[*models.SignUpResult] {
	email := normalizeEmail(req.Email)

	var res result.Result[*models.SignUpResult]
	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		existing, err := s.users.FindByEmail(ctx, q, email)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Printf("[auth][signup] abort: user already exists email=%q", email)
			res = result.Fail[*models.SignUpResult](http.StatusBadRequest, result.UserAlreadyExists)
			return nil
		}

		hash, err := security.HashPassword(req.Password)
		if err != nil {
			return err
		}

		user := &models.User{
			ID:           uuid.NewString(),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        email,
			PasswordHash: hash,
		}
		if err := s.users.Insert(ctx, q, user); err != nil {
			return err
		}

		tokens, err := s.issuer.Issue(user.ID)
		if err != nil {
			return err
		}

		// Best-effort: a failed welcome email must not roll back the signup.
		if err := s.emails.SendWelcomeEmail(ctx, q, user); err != nil {
			log.Printf("[auth][signup] warning: welcome email to %s failed: %v", user.Email, err)
		}

		res = result.OK(http.StatusOK, &models.SignUpResult{User: *user, Tokens: tokens})
		return nil
	})
	if err != nil {
		log.Printf("[auth][signup] tx failed: %v", err)
		return result.Internal[*models.SignUpResult]()
	}
	return res
}

// SignIn answers the same error for unknown email and wrong password.
func (s *authService) SignIn(ctx context.Context, req models.SignInRequest) result.Result[*models.TokenPair] {
	email := normalizeEmail(req.Email)

	var res result.Result[*models.TokenPair]
	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		user, err := s.users.FindByEmail(ctx, q, email)
		if err != nil {
			return err
		}
		if user == nil || !security.CheckPassword(user.PasswordHash, req.Password) {
			log.Printf("[auth][signin] abort: bad credentials email=%q", email)
			res = result.Fail[*models.TokenPair](http.StatusBadRequest, result.IncorrectUserCredential)
			return nil
		}

		tokens, err := s.issuer.Issue(user.ID)
		if err != nil {
			return err
		}
		res = result.OK(http.StatusOK, &tokens)
		return nil
	})
	if err != nil {
		log.Printf("[auth][signin] tx failed: %v", err)
		return result.Internal[*models.TokenPair]()
	}
	return res
}

// RenewAccessToken verifies the refresh token and issues a fresh pair for
// the same subject. The prior refresh token stays valid until it expires;
// there is no server-side revocation list.
func (s *authService) RenewAccessToken(ctx context.Context, refreshToken string) result.Result[*models.TokenPair] {
	subjectID, err := s.issuer.Verify(refreshToken)
	if err != nil {
		log.Printf("[auth][renew] abort: invalid refresh token: %v", err)
		return result.Fail[*models.TokenPair](http.StatusBadRequest, result.InvalidRefreshToken)
	}

	tokens, err := s.issuer.Issue(subjectID)
	if err != nil {
		log.Printf("[auth][renew] issue failed: %v", err)
		return result.Internal[*models.TokenPair]()
	}
	return result.OK(http.StatusOK, &tokens)
}

// RequestResetPassword always answers success so a caller cannot probe which
// emails have accounts: unknown email and cooldown rejection are
// indistinguishable from a delivered OTP.
func (s *authService) RequestResetPassword(ctx context.Context, email string, requestIP *string) result.Result[any] {
	email = normalizeEmail(email)
	ok := result.OK[any](http.StatusOK, nil)

	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		user, err := s.users.FindByEmail(ctx, q, email)
		if err != nil {
			return err
		}
		if user == nil {
			log.Printf("[auth][reset-request] no user for email=%q, reporting success", email)
			return nil
		}

		last, err := s.resets.SelectLatestByUserID(ctx, q, user.ID)
		if err != nil {
			return err
		}

		decision := otp.Decide(s.now(), resetAttempt(last), s.resetCfg.Cooldown(), s.resetCfg.Validity())
		if decision == otp.Reject {
			log.Printf("[auth][reset-request] within cooldown for userID=%s, skipping email", user.ID)
			return nil
		}

		// Only a hash is stored, so there is nothing to re-send: ResendSame
		// degenerates to minting a fresh code.
		if last != nil && last.IsOtpUsable {
			if err := s.resets.Invalidate(ctx, q, last.ID); err != nil {
				return err
			}
		}

		code, err := otp.Generate(s.resetCfg.Length, s.resetCfg.Alphabet)
		if err != nil {
			return err
		}
		if err := s.emails.SendResetPasswordEmail(ctx, q, user, requestIP, code); err != nil {
			return err
		}

		otpHash, err := security.HashOTP(code)
		if err != nil {
			return err
		}
		return s.resets.Insert(ctx, q, &models.PasswordResetRequest{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Email:       email,
			RequestIP:   requestIP,
			OtpHash:     otpHash,
			IsOtpUsable: true,
		})
	})
	if err != nil {
		log.Printf("[auth][reset-request] tx failed: %v", err)
		return result.Internal[any]()
	}
	return ok
}

// ResetPassword runs the whole verify-and-update sequence in one atomic
// transaction. Unknown user and missing request answer the same InvalidOTP
// code as a plain mismatch.
func (s *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) result.Result[*Message] {
	email := normalizeEmail(req.Email)

	var res result.Result[*Message]
	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		user, err := s.users.FindByEmail(ctx, q, email)
		if err != nil {
			return err
		}
		if user == nil {
			res = result.Fail[*Message](http.StatusBadRequest, result.InvalidOTP)
			return nil
		}

		last, err := s.resets.SelectLatestByUserID(ctx, q, user.ID)
		if err != nil {
			return err
		}
		if last == nil {
			res = result.Fail[*Message](http.StatusBadRequest, result.InvalidOTP)
			return nil
		}

		match := func(supplied string) bool { return security.CheckOTP(last.OtpHash, supplied) }
		switch otp.Verify(s.now(), resetAttempt(last), req.Otp, match, s.resetCfg.Validity()) {
		case otp.Expired:
			if last.IsOtpUsable {
				if err := s.resets.Invalidate(ctx, q, last.ID); err != nil {
					return err
				}
			}
			res = result.Fail[*Message](http.StatusBadRequest, result.ExpiredOTP)
			return nil

		case otp.Mismatch:
			// The code stays usable: the user may retry within the window.
			res = result.Fail[*Message](http.StatusBadRequest, result.InvalidOTP)
			return nil

		case otp.Valid:
			hash, err := security.HashPassword(req.NewPassword)
			if err != nil {
				return err
			}
			if err := s.users.UpdatePassword(ctx, q, user.ID, hash); err != nil {
				return err
			}
			if err := s.resets.Invalidate(ctx, q, last.ID); err != nil {
				return err
			}
			res = result.OK(http.StatusOK, &Message{Message: "Password has been reset successfully."})
			return nil

		default: // NotFound cannot happen, last is non-nil
			res = result.Fail[*Message](http.StatusBadRequest, result.InvalidOTP)
			return nil
		}
	})
	if err != nil {
		log.Printf("[auth][reset] tx failed: %v", err)
		return result.Internal[*Message]()
	}
	return res
}

// resetAttempt maps a ledger row to an engine snapshot. Reset codes are
// never re-sent, so issue time and last-sent time are both created_at.
func resetAttempt(last *models.PasswordResetRequest) *otp.Attempt {
	if last == nil {
		return nil
	}
	return &otp.Attempt{
		IssuedAt:   last.CreatedAt,
		LastSentAt: last.CreatedAt,
		Usable:     last.IsOtpUsable,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
