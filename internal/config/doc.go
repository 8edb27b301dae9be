// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.gotodo/gotodo.toml or OS-specific config directory)
// 3. Project config file (gotodo.toml or .gotodo.toml in the project root)
// 4. Environment variables (GOTODO_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.gotodo/gotodo.toml (preferred)
// - Windows: %APPDATA%\gotodo\gotodo.toml
// - macOS: ~/Library/Application Support/gotodo/gotodo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/gotodo/gotodo.toml or ~/.config/gotodo/gotodo.toml
//
// Project-level config locations (overrides user config):
// - ./gotodo.toml (preferred)
// - ./.gotodo.toml
package config
