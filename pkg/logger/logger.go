// Package logger wraps zap with a small keyed-value interface used by
// the server and the export handlers. Logs go to stdout as JSON so
// they can be collected as an event stream.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger at the given level ("debug", "info", "warn",
// "error"). Console format is used when json is false.
func New(levelName string, json bool) (*Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), level)
	return &Logger{sugar: zap.New(core).Sugar()}, nil
}

// MustNew builds a logger and panics on a bad level name.
func MustNew(levelName string, json bool) *Logger {
	l, err := New(levelName, json)
	if err != nil {
		panic(err)
	}
	return l
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, keysAndValues ...any) { l.sugar.Debugw(msg, keysAndValues...) }
func (l *Logger) Info(msg string, keysAndValues ...any)  { l.sugar.Infow(msg, keysAndValues...) }
func (l *Logger) Warn(msg string, keysAndValues ...any)  { l.sugar.Warnw(msg, keysAndValues...) }
func (l *Logger) Error(msg string, keysAndValues ...any) { l.sugar.Errorw(msg, keysAndValues...) }

// With returns a logger carrying extra fields on every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes buffered entries; call before exit.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
