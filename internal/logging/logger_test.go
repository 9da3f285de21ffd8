package logging

import (
	stderrors "errors"
	"testing"

	"fam450/internal/config"
	"fam450/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}

	for level, want := range cases {
		logger, err := New(config.LoggingConfig{Level: level, Format: "console"})
		require.NoError(t, err, level)
		assert.True(t, logger.Core().Enabled(want), level)
		if want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(want-1), level)
		}
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "trace"})
	assert.True(t, stderrors.Is(err, errors.ErrConfigInvalid))

	_, err = New(config.LoggingConfig{Level: "info", Format: "yaml"})
	assert.True(t, stderrors.Is(err, errors.ErrConfigInvalid))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger, err := New(config.LoggingConfig{})
	require.NoError(t, err)
	assert.Same(t, logger, OrNop(logger))
}
