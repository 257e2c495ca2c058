package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobtrack")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_PASSWORD_HASH", "")
	t.Setenv("REDIS_TTL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "jobtrack", cfg.App.AppName)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_DurationsAcceptSecondsAndGoSyntax(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "10m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 10*time.Minute, cfg.JWT.AccessExpiresIn)
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_TTL", "soon")
	t.Setenv("SCRAPER_HEADLESS", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "REDIS_TTL")
	assert.Contains(t, err.Error(), "SCRAPER_HEADLESS")
}

func TestLoad_AuthRequiresSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoad_CORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://jobs.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://jobs.example.com"}, cfg.App.CORSOrigins)
}
