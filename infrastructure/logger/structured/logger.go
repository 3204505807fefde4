// ABOUTME: Structured logger implementation using logrus with file rotation
// ABOUTME: Writes JSON lines to stdout and a size-rotated log file

package structured

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level and file output.
type Config struct {
	// Level is one of debug, info, warn, error
	Level string

	// FilePath enables rotated file output when non-empty
	FilePath string

	// MaxSizeMB is the rotation threshold per log file
	MaxSizeMB int

	// MaxBackups is how many rotated files to keep
	MaxBackups int

	// MaxAgeDays drops rotated files older than this
	MaxAgeDays int
}

// StructuredLogger implements the Logger interface using logrus.
type StructuredLogger struct {
	log *logrus.Logger
}

// NewStructuredLogger creates a logger from the given config. Unknown
// levels fall back to info.
func NewStructuredLogger(cfg Config) *StructuredLogger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	var out io.Writer = os.Stdout
	if cfg.FilePath != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	log.SetOutput(out)

	return &StructuredLogger{log: log}
}

// Debug logs a debug message
func (l *StructuredLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *StructuredLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *StructuredLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *StructuredLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
