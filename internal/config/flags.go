package config

import (
	"flag"
)

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil, "")
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	return parseFlagsHelper(cfg, fs, args, sources, SourceFlag)
}

// parseFlagsHelper is the shared implementation for flag parsing.
// If sources is non-nil, flag values are applied through shadow variables so
// only explicitly set flags override earlier layers.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("gotodo", flag.ContinueOnError)
	}

	// Track which flags are explicitly set (only used when sources != nil)
	flagSet := make(map[string]bool)

	var todoFile, schemaFile, logDir string
	var debug bool
	var paneWidth int
	var logLevel, logFormat string
	var logTimestamps, logCaller bool

	if sources == nil {
		// Direct binding for the non-source-tracking case
		fs.StringVar(&cfg.TodoFile, "todo", cfg.TodoFile, "Path to todo file")
		fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to schema file")
		fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
		fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Show the debug pane and write a debug trace")
		fs.IntVar(&cfg.TaskPaneWidth, "task-pane-width", cfg.TaskPaneWidth, "Width of the task list pane")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
		fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
		fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	} else {
		fs.StringVar(&todoFile, "todo", cfg.TodoFile, "Path to todo file")
		fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "Path to schema file")
		fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Log directory")
		fs.BoolVar(&debug, "debug", cfg.Debug, "Show the debug pane and write a debug trace")
		fs.IntVar(&paneWidth, "task-pane-width", cfg.TaskPaneWidth, "Width of the task list pane")
		fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
		fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
		fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"todo":            "todo_file",
		"schema":          "schema_file",
		"log-dir":         "log_dir",
		"debug":           "debug",
		"task-pane-width": "task_pane_width",
		"log-level":       "log_level",
		"log-format":      "log_format",
		"log-timestamps":  "log_timestamps",
		"log-caller":      "log_caller",
	}

	// Track which flags were set
	fs.Visit(func(f *flag.Flag) {
		flagSet[f.Name] = true
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = source
		}
	})

	if sources == nil {
		// Direct binding already applied
		return nil
	}

	// Apply based on which flags were set
	if flagSet["todo"] {
		cfg.TodoFile = todoFile
	}
	if flagSet["schema"] {
		cfg.SchemaFile = schemaFile
	}
	if flagSet["log-dir"] {
		cfg.LogDir = logDir
	}
	if flagSet["debug"] {
		cfg.Debug = debug
	}
	if flagSet["task-pane-width"] {
		cfg.TaskPaneWidth = paneWidth
	}
	if flagSet["log-level"] {
		cfg.LogLevel = logLevel
	}
	if flagSet["log-format"] {
		cfg.LogFormat = logFormat
	}
	if flagSet["log-timestamps"] {
		cfg.LogTimestamps = logTimestamps
	}
	if flagSet["log-caller"] {
		cfg.LogCaller = logCaller
	}

	return nil
}
