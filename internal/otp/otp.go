// Package otp holds the one-time-passcode engine: secret generation and the
// pure policy functions deciding when a code is re-sent, re-minted, rejected
// or accepted. The engine does no I/O; persistence side effects (inserting a
// row, flipping the usable flag) belong to the caller.
package otp

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Generate returns a random string of exactly length characters drawn from
// alphabet, using crypto/rand. Sampling is rejection-based so every character
// of the alphabet is equally likely.
func Generate(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp: length must be positive, got %d", length)
	}
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return "", fmt.Errorf("otp: alphabet must have 2..256 characters, got %d", len(alphabet))
	}

	// Largest multiple of len(alphabet) that fits a byte; bytes at or above
	// it are discarded to avoid modulo bias.
	limit := 256 - 256%len(alphabet)

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("otp: read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// Attempt is a snapshot of the latest ledger row for one identity.
type Attempt struct {
	IssuedAt   time.Time // when the code was first minted
	LastSentAt time.Time // when the code was last delivered
	Usable     bool
}

// Decision is the outcome of the request-throttling policy.
type Decision int

const (
	// IssueNew mints a fresh code; any prior usable code must be superseded.
	IssueNew Decision = iota
	// ResendSame re-delivers the identical code and bumps last-sent only.
	ResendSame
	// Reject refuses delivery because the cooldown window has not elapsed.
	Reject
)

func (d Decision) String() string {
	switch d {
	case IssueNew:
		return "issue-new"
	case ResendSame:
		return "resend-same"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// Decide applies the delivery policy for an OTP request. Cooldown is
// measured from the last delivery, validity from the first issuance; the two
// windows are configured independently so delivery-abuse prevention can be
// tuned apart from secret lifetime.
func Decide(now time.Time, last *Attempt, cooldown, validity time.Duration) Decision {
	if last == nil || !last.Usable {
		return IssueNew
	}
	if now.Sub(last.LastSentAt) < cooldown {
		return Reject
	}
	if now.Sub(last.IssuedAt) > validity {
		// Prior code outlived its validity window; caller invalidates it.
		return IssueNew
	}
	return ResendSame
}

// Outcome is the result of checking a supplied code against the ledger.
type Outcome int

const (
	Valid Outcome = iota
	Expired
	Mismatch
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	case Mismatch:
		return "mismatch"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}

// MatchFunc reports whether the supplied code matches the stored one. The
// caller binds the stored secret (hash compare for reset codes, constant-time
// equality for verification codes) so the engine never touches it.
type MatchFunc func(supplied string) bool

// Verify checks a supplied code against the latest ledger snapshot.
//
// On Valid and Expired the caller must invalidate the row: Valid because
// codes are single-use, Expired so a dead code cannot linger as "usable".
// On Mismatch the row stays usable, allowing a retry within the window.
func Verify(now time.Time, rec *Attempt, supplied string, match MatchFunc, validity time.Duration) Outcome {
	if rec == nil {
		return NotFound
	}
	if !rec.Usable {
		// Already consumed or superseded; indistinguishable from expired.
		return Expired
	}
	if now.Sub(rec.IssuedAt) > validity {
		return Expired
	}
	if match(supplied) {
		return Valid
	}
	return Mismatch
}
