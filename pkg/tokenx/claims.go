package tokenx

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose tags what an issued token may be used for. Decoding requires the
// expected purpose, so a verification token can never be replayed as an
// access token.
type Purpose string

const (
	// PurposeVerification gates the OTP confirm step of a signup or
	// signin attempt.
	PurposeVerification Purpose = "verification"
	// PurposeAccess authorizes API calls.
	PurposeAccess Purpose = "access"
)

// Default lifetimes per purpose.
const (
	DefaultVerificationTTL = 30 * time.Minute
	DefaultAccessTTL       = 15 * time.Minute
)

// Claims is the JWT payload carried by every signed token: the standard
// time-window claims plus the purpose tag.
type Claims struct {
	Purpose Purpose `json:"purpose"`

	jwt.RegisteredClaims
}

// NewJTI returns a random base64url token identifier. One per issuance,
// so two tokens for the same subject are never byte-identical.
func NewJTI() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("tokenx: generate jti: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
