package domain

import "time"

// TokenPair is what a successful confirm or refresh produces: the
// short-lived access token (JWT) and the opaque refresh token.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Session models the stored refresh-token record. Presenting the matching
// raw token is the only way to exercise it; the raw value itself is never
// persisted.
type Session struct {
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at time now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
