package logger

import (
	"log"
	"os"

	"atmterm/internal/domain/ports"
)

// StdLogger implements ports.Logger on top of the standard library's log.Logger.
type StdLogger struct {
	logger *log.Logger
}

// NewStdLogger creates a StdLogger writing to stderr with the given prefix.
func NewStdLogger(prefix string) ports.Logger {
	return &StdLogger{
		logger: log.New(os.Stderr, prefix, log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) {
	l.logger.Printf("[DEBUG] "+msg, args...)
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.logger.Printf("[INFO] "+msg, args...)
}

func (l *StdLogger) Warn(msg string, args ...interface{}) {
	l.logger.Printf("[WARN] "+msg, args...)
}

func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.logger.Printf("[ERROR] "+msg, args...)
}

func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.logger.Fatalf("[FATAL] "+msg, args...)
}

// Printf is kept for call sites that already hold a format string (parity with fmt-style helpers).
func (l *StdLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf(format, args...)
}
