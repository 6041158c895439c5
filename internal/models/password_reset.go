package models

import "time"

// PasswordResetRequest is one row of the password-reset ledger. Only the
// bcrypt hash of the OTP is stored; the plaintext code exists only in the
// email that carried it.
type PasswordResetRequest struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	RequestIP   *string   `json:"request_ip,omitempty"`
	OtpHash     string    `json:"-"`
	IsOtpUsable bool      `json:"is_otp_usable"`
	CreatedAt   time.Time `json:"created_at"`
}

type RequestResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
