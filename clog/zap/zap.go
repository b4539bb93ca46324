// Package zap routes clog output through a structured go.uber.org/zap logger.
package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cayleygraph/skos/clog"
)

// Use builds a zap logger and installs it as the clog backend.
// Development mode enables console encoding and stack traces on warnings.
func Use(development bool) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zl, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}
	l := &Logger{s: zl.Sugar(), level: cfg.Level}
	clog.SetLogger(l)
	return l, nil
}

// New wraps an existing zap logger. SetV only affects V checks for such loggers.
func New(zl *zap.Logger) *Logger {
	return &Logger{s: zl.Sugar(), level: zap.NewAtomicLevel()}
}

// Logger adapts a zap.SugaredLogger to clog.Logger and clog.Verbosity.
type Logger struct {
	s       *zap.SugaredLogger
	level   zap.AtomicLevel
	verbose int
}

func (l *Logger) Infof(format string, args ...interface{})    { l.s.Infof(format, args...) }
func (l *Logger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...interface{})   { l.s.Fatalf(format, args...) }

func (l *Logger) V(level int) bool { return l.verbose >= level }

func (l *Logger) SetV(level int) {
	l.verbose = level
	if level >= 2 {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error { return l.s.Sync() }
