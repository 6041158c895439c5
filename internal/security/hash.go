package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashOTP stores reset codes the same way passwords are stored.
func HashOTP(code string) (string, error) {
	return HashPassword(code)
}

func CheckOTP(hash, code string) bool {
	return CheckPassword(hash, code)
}

// ConstantTimeEquals compares two short secrets without timing leaks. Used
// for verification codes, which are stored in clear to support resend.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
