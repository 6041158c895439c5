package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"accountd/internal/models"
)

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256-signed access/refresh token pairs.
// Each token carries its own uuid jti and its own expiry. Sign and verify
// are pure and in-process.
type TokenIssuer struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secretKey string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (i *TokenIssuer) Issue(subjectID string) (models.TokenPair, error) {
	accessToken, err := i.sign(subjectID, i.accessTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := i.sign(subjectID, i.refreshTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i *TokenIssuer) sign(subjectID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secretKey)
}

// Verify checks signature and expiry and returns the subject id. Every
// failure mode (bad signature, expired, malformed) collapses to one error.
func (i *TokenIssuer) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secretKey, nil
	})
	if err != nil || !token.Valid || claims.UID == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.UID, nil
}
