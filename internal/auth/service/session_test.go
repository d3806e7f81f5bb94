package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/internal/auth/store/drivers/sqlite"
	"github.com/powoftech/relic-chat/pkg/cryptox"
	"github.com/powoftech/relic-chat/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionService, domain.User) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	codec, err := tokenx.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "relic-auth")
	require.NoError(t, err)

	directory := &DirectoryService{Store: st}
	user, err := directory.Create(context.Background(), "alice@example.com", "alice", "Alice", "hunter2")
	require.NoError(t, err)

	return &SessionService{Codec: codec, Store: st}, user
}

func TestSessionCreate(t *testing.T) {
	svc, user := newSessionFixture(t)
	ctx := context.Background()

	pair, err := svc.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, pair.AccessExpiresAt.After(time.Now()))
	require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	subject, err := svc.Codec.DecodeSubject(pair.AccessToken, tokenx.PurposeAccess)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", subject)

	// The refresh token must never be usable as an access token.
	_, err = svc.Codec.DecodeSubject(pair.RefreshToken, tokenx.PurposeAccess)
	require.Error(t, err)
}

func TestSessionRefresh_Rotation(t *testing.T) {
	svc, user := newSessionFixture(t)
	ctx := context.Background()

	pair, err := svc.Create(ctx, user)
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The exchanged token is dead.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// The replacement works exactly once more.
	_, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, next.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestSessionRefresh_Unknown(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "never-issued")
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.Refresh(ctx, "")
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestSessionRefresh_Expired(t *testing.T) {
	svc, user := newSessionFixture(t)
	ctx := context.Background()

	// Sessions born expired exercise the read-time expiry check.
	svc.RefreshTTL = -time.Minute

	pair, err := svc.Create(ctx, user)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// The expired row was dropped, not just rejected.
	_, err = svc.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(pair.RefreshToken))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionRevoke_Idempotent(t *testing.T) {
	svc, user := newSessionFixture(t)
	ctx := context.Background()

	pair, err := svc.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// Revoking again, or revoking garbage, is a no-op.
	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken))
	require.NoError(t, svc.Revoke(ctx, "never-issued"))
	require.NoError(t, svc.Revoke(ctx, ""))
}

func TestSessionRefresh_ConcurrentSingleWinner(t *testing.T) {
	svc, user := newSessionFixture(t)
	ctx := context.Background()

	pair, err := svc.Create(ctx, user)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Refresh(ctx, pair.RefreshToken)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, ErrInvalidRefresh)
			losses++
		}
	}
	require.Equal(t, 1, wins, "exactly one exchange may win")
	require.Equal(t, workers-1, losses)
}
