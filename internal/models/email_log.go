package models

import "time"

// EmailLog records every outbound message the SMTP relay accepted.
type EmailLog struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id,omitempty"`
	MessageID     string    `json:"message_id"`
	SenderAddress string    `json:"sender_address"`
	TargetAddress string    `json:"target_address"`
	Subject       string    `json:"subject"`
	BodyType      string    `json:"body_type"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}
