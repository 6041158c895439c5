package services

import (
	"context"
	"log"
	"net/http"
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

type VerificationService interface {
	RequestEmailVerification(ctx context.Context, email string, requestIP *string) result.Result[any]
	// VerifyEmail checks the supplied OTP. When q is non-nil the check joins
	// the caller's transaction scope; otherwise it opens its own.
	VerifyEmail(ctx context.Context, q storage.Querier, email, suppliedOtp string) result.Result[any]
}

type verificationService struct {
	tx        storage.TxRunner
	requests  repositories.EmailVerificationRepository
	emails    EmailService
	verifyCfg config.OtpConfig

	now func() time.Time
}

func NewVerificationService(
	tx storage.TxRunner,
	requests repositories.EmailVerificationRepository,
	emails EmailService,
	verifyCfg config.OtpConfig,
) VerificationService {
	return &verificationService{
		tx:        tx,
		requests:  requests,
		emails:    emails,
		verifyCfg: verifyCfg,
		now:       time.Now,
	}
}

// RequestEmailVerification either re-delivers the outstanding code, mints a
// fresh one, or refuses within the cooldown. Unlike the reset flow the
// cooldown rejection is explicit: verification requests are not
// enumeration-sensitive, the caller already knows the address.
func (s *verificationService) RequestEmailVerification(ctx context.Context, email string, requestIP *string) result.Result[any] {
	email = normalizeEmail(email)

	var res result.Result[any]
	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		last, err := s.requests.SelectLatestByEmail(ctx, q, email)
		if err != nil {
			return err
		}

		switch otp.Decide(s.now(), verificationAttempt(last), s.verifyCfg.Cooldown(), s.verifyCfg.Validity()) {
		case otp.Reject:
			log.Printf("[verification][request] within cooldown for email=%q", email)
			res = result.Fail[any](http.StatusBadRequest, result.RetryNotAllowedWithinCoolDownPeriod)
			return nil

		case otp.ResendSame:
			// Identical code, only the last-sent timestamp moves.
			if err := s.emails.SendVerificationEmail(ctx, q, email, requestIP, last.Otp); err != nil {
				return err
			}
			if err := s.requests.TouchRequestTime(ctx, q, last.ID); err != nil {
				return err
			}
			res = result.OK[any](http.StatusOK, nil)
			return nil

		default: // IssueNew
			if last != nil && last.IsOtpUsable {
				if err := s.requests.Invalidate(ctx, q, last.ID); err != nil {
					return err
				}
			}
			code, err := otp.Generate(s.verifyCfg.Length, s.verifyCfg.Alphabet)
			if err != nil {
				return err
			}
			if err := s.emails.SendVerificationEmail(ctx, q, email, requestIP, code); err != nil {
				return err
			}
			if err := s.requests.Insert(ctx, q, &models.EmailVerificationRequest{
				ID:          uuid.NewString(),
				Email:       email,
				RequestIP:   requestIP,
				Otp:         code,
				IsOtpUsable: true,
			}); err != nil {
				return err
			}
			res = result.OK[any](http.StatusOK, nil)
			return nil
		}
	})
	if err != nil {
		log.Printf("[verification][request] tx failed: %v", err)
		return result.Internal[any]()
	}
	return res
}

func (s *verificationService) VerifyEmail(ctx context.Context, q storage.Querier, email, suppliedOtp string) result.Result[any] {
	email = normalizeEmail(email)

	if q != nil {
		res, err := s.verifyEmail(ctx, q, email, suppliedOtp)
		if err != nil {
			log.Printf("[verification][verify] failed: %v", err)
			return result.Internal[any]()
		}
		return res
	}

	var res result.Result[any]
	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		var err error
		res, err = s.verifyEmail(ctx, q, email, suppliedOtp)
		return err
	})
	if err != nil {
		log.Printf("[verification][verify] tx failed: %v", err)
		return result.Internal[any]()
	}
	return res
}

func (s *verificationService) verifyEmail(ctx context.Context, q storage.Querier, email, suppliedOtp string) (result.Result[any], error) {
	last, err := s.requests.SelectLatestByEmail(ctx, q, email)
	if err != nil {
		return result.Result[any]{}, err
	}
	if last == nil {
		return result.Fail[any](http.StatusBadRequest, result.NoEmailVerificationRequestFound), nil
	}

	match := func(supplied string) bool { return security.ConstantTimeEquals(last.Otp, supplied) }
	switch otp.Verify(s.now(), verificationAttempt(last), suppliedOtp, match, s.verifyCfg.Validity()) {
	case otp.Expired:
		if last.IsOtpUsable {
			if err := s.requests.Invalidate(ctx, q, last.ID); err != nil {
				return result.Result[any]{}, err
			}
		}
		return result.Fail[any](http.StatusBadRequest, result.EmailVerificationOtpExpired), nil

	case otp.Mismatch:
		return result.Fail[any](http.StatusBadRequest, result.InvalidEmailVerificationOtp), nil

	case otp.Valid:
		// single-use: consumed before success is reported
		if err := s.requests.Invalidate(ctx, q, last.ID); err != nil {
			return result.Result[any]{}, err
		}
		return result.OK[any](http.StatusOK, nil), nil

	default:
		return result.Fail[any](http.StatusBadRequest, result.NoEmailVerificationRequestFound), nil
	}
}

// verificationAttempt maps a ledger row to an engine snapshot. Validity is
// anchored on created_at (first issuance) so resends never extend the
// lifetime of the code; cooldown follows req_date_time (last delivery).
func verificationAttempt(last *models.EmailVerificationRequest) *otp.Attempt {
	if last == nil {
		return nil
	}
	return &otp.Attempt{
		IssuedAt:   last.CreatedAt,
		LastSentAt: last.ReqDateTime,
		Usable:     last.IsOtpUsable,
	}
}
