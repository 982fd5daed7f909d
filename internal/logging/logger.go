// Package logging builds the zap logger the glyphart CLI reports through.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// New builds a logger that always writes to stderr, keeping stdout free
// for the rendered art. Pretty output uses zap's development encoder with
// colored levels; JSON output uses the production encoder with ISO8601
// timestamps.
func New(format, level string) (*zap.Logger, error) {
	var config zap.Config

	switch format {
	case FormatPretty:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case FormatJSON, "":
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Init builds a logger with New and installs it as zap's global logger.
// After calling this, use zap.L() directly.
func Init(format, level string) error {
	logger, err := New(format, level)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// LogDeferredError logs the error returned by a deferred cleanup call.
func LogDeferredError(fn func() error) {
	if err := fn(); err != nil {
		zap.L().Error("Deferred cleanup failed", zap.Error(err))
	}
}
