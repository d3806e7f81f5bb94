package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec issues and validates HS256-signed bearer tokens. One codec serves
// every token purpose; the lifetime and the purpose claim are fixed at
// issuance.
type Codec struct {
	secret []byte
	issuer string

	verificationTTL time.Duration
	accessTTL       time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// Option customizes a Codec.
type Option func(*Codec)

// WithTTL overrides the default lifetime for a purpose.
func WithTTL(p Purpose, ttl time.Duration) Option {
	return func(c *Codec) {
		switch p {
		case PurposeVerification:
			c.verificationTTL = ttl
		case PurposeAccess:
			c.accessTTL = ttl
		}
	}
}

// WithClock overrides the time source. Tests use this to fast-forward
// past expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a Codec around a process-wide HMAC secret.
func NewCodec(secret []byte, issuer string, opts ...Option) (*Codec, error) {
	if len(secret) < 32 {
		return nil, errors.New("tokenx: signing secret must be at least 32 bytes")
	}

	c := &Codec{
		secret:          secret,
		issuer:          issuer,
		verificationTTL: DefaultVerificationTTL,
		accessTTL:       DefaultAccessTTL,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL reports the configured lifetime for a purpose, or zero for an
// unknown purpose. Callers use it to size cookie lifetimes.
func (c *Codec) TTL(p Purpose) time.Duration {
	ttl, err := c.ttl(p)
	if err != nil {
		return 0
	}
	return ttl
}

func (c *Codec) ttl(p Purpose) (time.Duration, error) {
	switch p {
	case PurposeVerification:
		return c.verificationTTL, nil
	case PurposeAccess:
		return c.accessTTL, nil
	default:
		return 0, fmt.Errorf("tokenx: unknown purpose %q", p)
	}
}

// Issue signs a token for subject with the lifetime and purpose claim of p.
func (c *Codec) Issue(subject string, p Purpose) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	ttl, err := c.ttl(p)
	if err != nil {
		return "", err
	}

	jti, err := NewJTI()
	if err != nil {
		return "", err
	}

	now := c.now().UTC()
	claims := Claims{
		Purpose: p,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign token: %w", err)
	}
	return signed, nil
}

// DecodeSubject verifies signature, time window and purpose, and returns
// the sub claim. Failures map to the package sentinel errors.
func (c *Codec) DecodeSubject(tokenString string, want Purpose) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", mapJWTError(err)
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	if claims.Purpose != want {
		return "", ErrPurposeMismatch
	}
	return claims.Subject, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
