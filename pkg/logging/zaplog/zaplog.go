// Package zaplog provides a zap-backed sprintf logger that plugs into logging.LogFuncs.
package zaplog

import (
	"fmt"
	"strings"

	"github.com/core-tools/hsu-monit-go/pkg/logging"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type SprintfLogger struct {
	sugar *zap.SugaredLogger
}

// ParseLevel maps the configuration level names onto zap levels
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// NewZapSprintfLogger builds a console logger writing to stderr
func NewZapSprintfLogger(level string) (*SprintfLogger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true
	config.DisableCaller = true
	config.Sampling = nil

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &SprintfLogger{sugar: zapLogger.Sugar()}, nil
}

// NewZapSprintfLoggerWithCore wraps an existing core, mostly useful for tests
func NewZapSprintfLoggerWithCore(core zapcore.Core) *SprintfLogger {
	return &SprintfLogger{sugar: zap.New(core).Sugar()}
}

func (l *SprintfLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *SprintfLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *SprintfLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *SprintfLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *SprintfLogger) Sync() error {
	return l.sugar.Sync()
}

func (l *SprintfLogger) LogFuncs() logging.LogFuncs {
	return logging.LogFuncs{
		Debugf: l.Debugf,
		Infof:  l.Infof,
		Warnf:  l.Warnf,
		Errorf: l.Errorf,
	}
}
