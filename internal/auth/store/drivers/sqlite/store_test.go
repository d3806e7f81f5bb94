package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser() domain.User {
	return domain.User{
		ID:                 idx.New().String(),
		Email:              "Alice@Example.com",
		NormalizedEmail:    "alice@example.com",
		Username:           "alice_01",
		NormalizedUsername: "alice_01",
		DisplayName:        "Alice",
		PasswordHash:       "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByNormalizedEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "Alice@Example.com", got.Email)
	require.False(t, got.EmailConfirmed)
	require.Nil(t, got.AvatarURL)
	require.False(t, got.CreatedAt.IsZero())

	got, err = s.Users().GetUserByNormalizedUsername(ctx, "alice_01")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestUsers_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetUserByNormalizedEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	dup := testUser()
	dup.ID = idx.New().String()
	dup.Username = "other"
	dup.NormalizedUsername = "other"

	err := s.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_MarkEmailConfirmed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.Users().MarkEmailConfirmed(ctx, u.ID))

	got, err := s.Users().GetUserByNormalizedEmail(ctx, u.NormalizedEmail)
	require.NoError(t, err)
	require.True(t, got.EmailConfirmed)

	require.ErrorIs(t, s.Users().MarkEmailConfirmed(ctx, "no-such-id"), store.ErrNotFound)
}

func TestUsers_DeleteCascadesSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	sess := domain.Session{
		TokenHash: "fingerprint-1",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))

	_, err := s.Sessions().GetSessionByTokenHash(ctx, "fingerprint-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions_DeleteReportsWinner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
		TokenHash: "fp",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	deleted, err := s.Sessions().DeleteSessionByTokenHash(ctx, "fp")
	require.NoError(t, err)
	require.True(t, deleted)

	// Second delete of the same fingerprint finds nothing.
	deleted, err = s.Sessions().DeleteSessionByTokenHash(ctx, "fp")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestSessions_DeleteExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
		TokenHash: "stale",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
		TokenHash: "fresh",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, s.Sessions().DeleteExpiredSessions(ctx))

	_, err := s.Sessions().GetSessionByTokenHash(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Sessions().GetSessionByTokenHash(ctx, "fresh")
	require.NoError(t, err)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Users().GetUserByNormalizedEmail(ctx, u.NormalizedEmail)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_CommitOnSuccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByNormalizedEmail(ctx, u.NormalizedEmail)
	require.NoError(t, err)
}
