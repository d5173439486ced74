package zaplog

import (
	"testing"

	"github.com/core-tools/hsu-monit-go/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input     string
		expected  zapcore.Level
		expectErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"", zapcore.InfoLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestSprintfLogger_ForwardsThroughLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zapLogger := NewZapSprintfLoggerWithCore(core)

	logger := logging.NewLogger("[monitcli] ", zapLogger.LogFuncs())
	logger.Debugf("filtered out")
	logger.Infof("running %s", "monit status")
	logger.Errorf("failed")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "[monitcli] running monit status", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNewZapSprintfLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := NewZapSprintfLogger("chatty")
	assert.Error(t, err)

	zapLogger, err := NewZapSprintfLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, zapLogger)
}
