package models

import "time"

// EmailVerificationRequest is one row of the email-verification ledger.
//
// Unlike password resets the OTP is stored in clear: the flow re-sends the
// identical code on a resend instead of rotating it, so the original value
// has to be recoverable. The code is short-lived and proves nothing beyond
// inbox possession, which keeps this an acceptable trade-off.
type EmailVerificationRequest struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	RequestIP   *string   `json:"request_ip,omitempty"`
	Otp         string    `json:"-"`
	IsOtpUsable bool      `json:"is_otp_usable"`
	ReqDateTime time.Time `json:"req_date_time"` // last send, bumped on resend
	CreatedAt   time.Time `json:"created_at"`    // first issue, never changes
	UpdatedAt   time.Time `json:"updated_at"`
}

type RequestEmailVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}
