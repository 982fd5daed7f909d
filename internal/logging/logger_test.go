package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{FormatPretty, FormatJSON, ""} {
		t.Run(format, func(t *testing.T) {
			logger, err := New(format, "debug")
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNew_Level(t *testing.T) {
	logger, err := New(FormatJSON, "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("xml", "info")
	assert.ErrorContains(t, err, "unknown log format")

	_, err = New(FormatJSON, "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestInit_ReplacesGlobal(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, Init(FormatPretty, "error"))
	assert.False(t, zap.L().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.ErrorLevel))
}

func TestLogDeferredError(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	core, logs := observer.New(zap.ErrorLevel)
	zap.ReplaceGlobals(zap.New(core))

	LogDeferredError(func() error { return nil })
	assert.Equal(t, 0, logs.Len())

	LogDeferredError(func() error { return errors.New("close failed") })
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Deferred cleanup failed", entry.Message)
	assert.Equal(t, "close failed", entry.ContextMap()["error"])
}
