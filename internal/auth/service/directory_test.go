package service

import (
	"context"
	"strings"
	"testing"

	"github.com/powoftech/relic-chat/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newDirectoryFixture(t *testing.T) *DirectoryService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return &DirectoryService{Store: st}
}

func TestDirectoryNormalization(t *testing.T) {
	svc := newDirectoryFixture(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "  Alice@Example.COM ", "Alice_01", "Alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Alice@Example.COM", user.Email)
	require.Equal(t, "alice@example.com", user.NormalizedEmail)
	require.Equal(t, "Alice_01", user.Username)
	require.Equal(t, "alice_01", user.NormalizedUsername)

	// Lookups hit the normalized columns regardless of input casing.
	got, err := svc.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	got, err = svc.FindByUsername(ctx, " alice_01 ")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// The stored hash is a PHC string, never the raw password.
	require.True(t, strings.HasPrefix(got.PasswordHash, "$argon2id$"))
	require.NotContains(t, got.PasswordHash, "hunter2")
}

func TestDirectoryAvailability(t *testing.T) {
	svc := newDirectoryFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice@example.com", "alice", "Alice", "hunter2")
	require.NoError(t, err)

	tests := []struct {
		name         string
		email        string
		username     string
		wantEmail    bool
		wantUsername bool
	}{
		{"both taken", "alice@example.com", "alice", false, false},
		{"both free", "bob@example.com", "bob", true, true},
		{"email taken username free", "ALICE@example.com", "bob", false, true},
		{"email free username taken", "bob@example.com", "ALICE", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailFree, usernameFree, err := svc.Availability(ctx, tt.email, tt.username)
			require.NoError(t, err)
			require.Equal(t, tt.wantEmail, emailFree)
			require.Equal(t, tt.wantUsername, usernameFree)
		})
	}
}
