package badgerfx

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// zapLogger adapts zap to badger.Logger. Badger terminates its messages with a
// newline, which is dropped.
type zapLogger struct {
	logger *zap.SugaredLogger
}

func newLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{
		logger: l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Debugf implements badger.Logger.
func (l *zapLogger) Debugf(format string, a ...any) {
	l.logger.Debugf(strings.TrimSuffix(format, "\n"), a...)
}

// Errorf implements badger.Logger.
func (l *zapLogger) Errorf(format string, a ...any) {
	l.logger.Errorf(strings.TrimSuffix(format, "\n"), a...)
}

// Infof implements badger.Logger.
func (l *zapLogger) Infof(format string, a ...any) {
	l.logger.Infof(strings.TrimSuffix(format, "\n"), a...)
}

// Warningf implements badger.Logger.
func (l *zapLogger) Warningf(format string, a ...any) {
	l.logger.Warnf(strings.TrimSuffix(format, "\n"), a...)
}

var _ badger.Logger = (*zapLogger)(nil)
