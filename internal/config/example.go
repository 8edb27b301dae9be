// Package config provides configuration loading and management.
package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# gotodo configuration file
# Values can be overridden by environment variables (GOTODO_*) or CLI flags

# Todo file (relative to project root)
todo_file = "todos.json"

# Schema file used by doctor (falls back to the built-in schema if missing)
schema_file = "todos.schema.json"

# Log directory for debug traces (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.gotodo"

# Show the debug pane and write a debug trace
debug = false

# Width of the task list pane in the interactive session
task_pane_width = 30

# Console log level: debug, info, warn, error
log_level = "info"

# Console log format: text, json, logfmt
log_format = "text"

# Show timestamps in console logs
log_timestamps = false

# Show caller location in console logs
log_caller = false
`
}
