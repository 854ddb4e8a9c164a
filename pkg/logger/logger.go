package logger

import (
	"io"
	"strings"

	glog "github.com/google/logger"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
	inner *glog.Logger
}

// NewLogger writes to stderr and, when out is not nil, also to out.
func NewLogger(name string, level int, out io.Writer) *defaultLogger {
	if out == nil {
		out = io.Discard
	}

	return &defaultLogger{level: level, inner: glog.Init(name, true, false, out)}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	if l.level <= DEBUG {
		l.inner.InfoDepth(1, sprintf("[DEBUG] "+msg, a...))
	}
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	if l.level <= INFO {
		l.inner.InfoDepth(1, sprintf(msg, a...))
	}
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	if l.level <= WARNING {
		l.inner.WarningDepth(1, sprintf(msg, a...))
	}
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	if l.level <= ERROR {
		l.inner.ErrorDepth(1, sprintf(msg, a...))
	}
}

func (l *defaultLogger) Close() {
	l.inner.Close()
}

// ParseLevel maps a config value to a level, unknown values fall back to INFO.
func ParseLevel(s string) int {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "silence", "none":
		return SILENCE
	default:
		return INFO
	}
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
