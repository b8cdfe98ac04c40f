package ui

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the diagnostics sink injected into the crawler and its parts,
// keeping progress reporting decoupled from control flow.
type Logger struct {
	l     *log.Logger
	Debug bool
}

func NewLogger(debug bool) *Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})

	return &Logger{l: l, Debug: debug}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.l.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.l.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.l.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.l.Errorf(format, args...)
}
