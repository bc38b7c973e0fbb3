package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("CONFIG_ENCRYPTION_KEY", strings.Repeat("k", 32))
}

func TestLoadDefaults(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "pacsboard-session", cfg.Session.CookieName)
	assert.False(t, cfg.Session.Secure, "secure cookies only in production")
	assert.Equal(t, "db_config.json", cfg.Settings.FilePath)
}

func TestLoadOverrides(t *testing.T) {
	validEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	validEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	short := *cfg
	short.Session.Secret = "too-short"
	assert.Error(t, short.Validate())

	badKey := *cfg
	badKey.Crypto.EncryptionKey = "not-32-bytes"
	assert.Error(t, badKey.Validate())

	badPort := *cfg
	badPort.Server.Port = 0
	assert.Error(t, badPort.Validate())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	validEnv(t)
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
