// Logger abstraction and log levels.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for geometry and font resolution details.
	LevelDebug LogLevel = iota
	// LevelInfo is for per-file status lines and the run summary.
	LevelInfo
	// LevelWarn is for recoverable problems that don't stop processing.
	LevelWarn
	// LevelError is for failed files and fatal input errors.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging operations with message translation.
type Logger interface {
	// Debug logs a debug message with optional format arguments.
	// The msg parameter is the message key that can be translated.
	Debug(msg string, args ...interface{})

	// Info logs an informational message with optional format arguments.
	Info(msg string, args ...interface{})

	// Warn logs a warning message with optional format arguments.
	Warn(msg string, args ...interface{})

	// Error logs an error message with optional format arguments.
	Error(msg string, args ...interface{})

	// WithComponent returns a new Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
