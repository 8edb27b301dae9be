package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleOptions holds configuration for console logging.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console logging.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "gotodo",
	}
}

// Console is a sink backed by charmbracelet/log for colorful, leveled,
// human-readable output. Debug events land at debug level; command code uses
// Logger for info and error output.
type Console struct {
	logger *log.Logger
}

// NewConsole creates a new console sink with the given options.
func NewConsole(opts ConsoleOptions) *Console {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
	return &Console{logger: logger}
}

// NewConsoleWithLogger creates a console sink around a custom logger.
// This is useful for testing or when you want to redirect output.
func NewConsoleWithLogger(logger *log.Logger) *Console {
	return &Console{logger: logger}
}

// NewConsoleFromConfig creates a Console from string configuration values.
// This is useful when loading config from TOML or environment variables.
func NewConsoleFromConfig(level, format string, timestamps, caller bool, prefix string) *Console {
	opts := ConsoleOptions{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: timestamps,
		ReportCaller:    caller,
		Prefix:          prefix,
	}
	return NewConsole(opts)
}

// NewTestConsole creates a console sink that writes to a specific writer
// for testing purposes. It uses minimal formatting for easier test assertions.
func NewTestConsole(w io.Writer) *Console {
	logger := log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	return &Console{logger: logger}
}

// Write logs a debug event at debug level.
func (c *Console) Write(event Event) error {
	c.logger.Debug(event.Message)
	return nil
}

// Logger returns the underlying leveled logger.
func (c *Console) Logger() *log.Logger {
	return c.logger
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
