package logging

import (
	"errors"
	"strings"
	"syscall"

	"jobtrack/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Components take the returned *zap.Logger and
// fall back to zap.NewNop() when handed nil.
func New(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Log.Level)))
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var zcfg zap.Config
	if strings.EqualFold(cfg.Log.Format, "console") {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig = encoderCfg
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig = encoderCfg
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(
		zap.String("app", cfg.App.AppName),
		zap.String("env", cfg.App.Environment),
	), nil
}

// Sync flushes the logger, ignoring the EINVAL/ENOTTY returned when stdout is a terminal.
func Sync(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}
	err := logger.Sync()
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == syscall.EINVAL || errno == syscall.ENOTTY) {
		return nil
	}
	return err
}

func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
