package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewValidCombinations(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, format := range []string{"json", "console"} {
			t.Run(level+" "+format, func(t *testing.T) {
				logger, err := New(level, format)
				require.NoError(t, err)
				require.NotNil(t, logger)
				logger.Info("test log message")
			})
		}
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"unknown level", "trace", "json"},
		{"uppercase level", "INFO", "json"},
		{"empty level", "", "json"},
		{"unknown format", "info", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			assert.Error(t, err)
			assert.Nil(t, logger)
		})
	}
}

func TestNewLevelFiltering(t *testing.T) {
	logger, err := New("warn", "json")
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewDevelopment(t *testing.T) {
	logger, err := NewDevelopment()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewProduction(t *testing.T) {
	logger, err := NewProduction()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
