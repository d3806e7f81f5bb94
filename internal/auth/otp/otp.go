// Package otp issues and redeems the one-time passcodes that gate the
// verification step. Codes are keyed by the verification token they belong
// to and live for a bounded TTL; redemption is single-use.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/powoftech/relic-chat/pkg/cryptox"
)

// DefaultTTL matches the verification token lifetime, so a code never
// outlives the token it is bound to.
const DefaultTTL = 30 * time.Minute

// Store associates a verification token with a numeric passcode. At most
// one code is live per token; issuing again overwrites the previous one.
type Store interface {
	// Issue generates a fresh 6-digit code for the correlation token,
	// replacing any prior code, and returns it for out-of-band delivery.
	Issue(ctx context.Context, correlationToken string) (string, error)

	// Verify reports whether a live code exists for the token and equals
	// suppliedCode. It does not delete. A missing record (never issued,
	// expired, already consumed) reads the same as a wrong code.
	Verify(ctx context.Context, correlationToken, suppliedCode string) (bool, error)

	// Take atomically verifies and consumes in one step so two concurrent
	// confirms cannot both succeed. The confirm flow uses this, not
	// Verify+Consume.
	Take(ctx context.Context, correlationToken, suppliedCode string) (bool, error)

	// Consume deletes the record. Idempotent; absence is not an error.
	Consume(ctx context.Context, correlationToken string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// GenerateCode returns a uniformly random zero-padded 6-digit code in
// [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// storageKey derives the keyspace entry for a correlation token. The raw
// token never reaches the backing store; only its fingerprint does.
func storageKey(correlationToken string) string {
	return "otp:" + cryptox.FingerprintToken(correlationToken)
}
