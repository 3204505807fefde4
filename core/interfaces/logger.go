// ABOUTME: Logger interface for structured logging throughout the application
// ABOUTME: Implementations live under infrastructure/logger

package interfaces

// Logger defines the interface for structured logging.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a debug message with optional structured fields
	Debug(msg string, fields map[string]interface{})

	// Info logs an informational message with optional structured fields
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning message with optional structured fields
	Warn(msg string, fields map[string]interface{})

	// Error logs an error message with optional structured fields
	Error(msg string, fields map[string]interface{})
}
