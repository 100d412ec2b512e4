// ABOUTME: Logrus-based logger implementation with structured field support
// ABOUTME: Adapts logrus to the core Logger interface

package logrus

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements the Logger interface using sirupsen/logrus
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewLogrusLogger creates a new logrus-backed logger writing JSON to stdout
func NewLogrusLogger() *LogrusLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	return &LogrusLogger{logger: logger}
}

// NewLogrusLoggerWithLevel creates a logger with the given level name.
// Unrecognized levels fall back to info.
func NewLogrusLoggerWithLevel(level string) *LogrusLogger {
	l := NewLogrusLogger()
	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.logger.SetLevel(parsed)
	}
	return l
}

// Debug logs a debug message
func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *LogrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}
