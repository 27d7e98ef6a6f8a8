// Package logging builds the JSON-per-line zap loggers used across the service.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps LOG_LEVEL values onto zap levels.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %s (valid levels are debug|info|warn|error)", s)
	}
}

// New returns a JSON logger writing one object per line to w.
// Timestamps are rendered as RFC3339Nano in loc under the "ts" key.
func New(w io.Writer, level zapcore.Level, loc *time.Location) *zap.Logger {
	if loc == nil {
		loc = time.UTC
	}
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.MessageKey = "msg"
	enc.LevelKey = "level"
	enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	enc.EncodeTime = func(ts time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(ts.In(loc).Format(time.RFC3339Nano))
	}
	enc.EncodeDuration = zapcore.MillisDurationEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	))
}

// NewStdout is New bound to os.Stdout with a level string from configuration.
// An unknown level falls back to info and is reported through the returned logger.
func NewStdout(level string, loc *time.Location) *zap.Logger {
	lvl, err := ParseLevel(level)
	l := New(os.Stdout, lvl, loc)
	if err != nil {
		l.Warn("invalid log level, using info", zap.Error(err))
	}
	return l
}

// Component tags a logger with the emitting component.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("component", name))
}
