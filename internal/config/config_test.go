package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(3000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.SessionLifetime)
	assert.False(t, cfg.Auth.SecureCookies)
	assert.Equal(t, "session", cfg.Auth.CookieName)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/fintracker")
	t.Setenv("AUTH_SECURE_COOKIES", "true")
	t.Setenv("AUTH_SESSION_LIFETIME", "1h")
	t.Setenv("TASKS_ENABLED", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/fintracker", cfg.Database.DSN)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.Equal(t, time.Hour, cfg.Auth.SessionLifetime)
	assert.False(t, cfg.Tasks.Enabled)
}

func TestLoadDotenv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		err := LoadDotenv(filepath.Join(t.TempDir(), "nope.env"))
		assert.NoError(t, err)
	})

	t.Run("values are exported to the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("FINTRACKER_DOTENV_TEST=loaded\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("FINTRACKER_DOTENV_TEST") })

		require.NoError(t, LoadDotenv(path))
		assert.Equal(t, "loaded", os.Getenv("FINTRACKER_DOTENV_TEST"))
	})
}

func TestNewConfig_SessionLifetimeFallback(t *testing.T) {
	for _, value := range []string{"thirty days", "0s", "-1h"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("AUTH_SESSION_LIFETIME", value)

			cfg := NewConfig()
			assert.Equal(t, DefaultSessionLifetime, cfg.Auth.SessionLifetime)
		})
	}
}
