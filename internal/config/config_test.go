package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires signing secret", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "s3cret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8000", cfg.HTTPAddr)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, 24*time.Hour, cfg.VerificationTTL)
		assert.Equal(t, 15*time.Minute, cfg.ResetTTL)
		assert.True(t, cfg.CookieSecure)
	})

	t.Run("rejects out-of-range bcrypt cost", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "s3cret")
		t.Setenv("BCRYPT_COST", "99")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "s3cret")
		t.Setenv("SESSION_TTL", "1h")
		t.Setenv("COOKIE_SECURE", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.False(t, cfg.CookieSecure)
	})
}
