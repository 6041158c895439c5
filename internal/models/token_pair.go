package models

// TokenPair is a freshly signed access/refresh token pair. Tokens are
// stateless: nothing is persisted, verification is signature + expiry only.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
