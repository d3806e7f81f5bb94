package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "relic-auth", cfg.Issuer)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.True(t, cfg.DevMode())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "staging")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HOUSEKEEPING_INTERVAL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "staging", cfg.Env)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
	require.False(t, cfg.DevMode())
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "AUTH_JWT_SECRET")
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "too-short")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "32 bytes")
	})

	t.Run("prod requires a real mailer", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", strings.Repeat("s", 32))
		t.Setenv("ENV", "prod")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "RESEND_API_KEY")
	})
}
