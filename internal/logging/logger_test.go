package logging

import (
	"testing"

	"jobtrack/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cfg := config.Config{
		App: config.AppConfig{AppName: "jobtrack", Environment: "test"},
		Log: config.LogConfig{Level: "warn", Format: "json"},
	}

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	_ = Sync(logger)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.Config{Log: config.LogConfig{Level: "loud"}})
	require.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	assert.NoError(t, Sync(nil))
}
