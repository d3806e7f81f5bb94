package store

import (
	"context"
	"errors"

	"github.com/powoftech/relic-chat/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep the surface tidy and
// make transaction scoping explicit.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Refresh
	// rotation and signup rollback go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// A unique-constraint hit maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByNormalizedEmail looks up by the normalized email, the
	// identity tokens carry.
	GetUserByNormalizedEmail(ctx context.Context, normalizedEmail string) (domain.User, error)

	// GetUserByNormalizedUsername looks up by the normalized username.
	GetUserByNormalizedUsername(ctx context.Context, normalizedUsername string) (domain.User, error)

	// MarkEmailConfirmed flips email_confirmed and bumps updated_at.
	MarkEmailConfirmed(ctx context.Context, userID string) error

	// DeleteUser cascades to sessions (per schema). Used to roll back a
	// signup whose verification mail could not be sent.
	DeleteUser(ctx context.Context, userID string) error
}

type Sessions interface {
	// CreateSession stores a new refresh-token record keyed by fingerprint.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the record for a fingerprint, expired
	// or not. Callers apply the expiry predicate.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// DeleteSessionByTokenHash removes the record and reports whether a
	// row was actually deleted. Rotation relies on exactly one concurrent
	// caller seeing true here.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) (bool, error)

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
