// Package cmd implements the CLI command structure for gotodo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/gotodo/internal/config"
	"github.com/nibzard/gotodo/internal/logging"
	"github.com/nibzard/gotodo/internal/todo"
	"github.com/nibzard/gotodo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the gotodo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("gotodo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags; the tracked sources feed the doctor report.
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, open the interactive session
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// If it's not a recognized command, it might be a todo file path
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.TodoFile = subcommand
			return tuiCommand(ctx, cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand opens the interactive session.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse tui-specific flags
	fs := flag.NewFlagSet("gotodo tui", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.TodoFile = remaining[0]
	}
	if !filepath.IsAbs(cfg.TodoFile) {
		cfg.TodoFile = filepath.Join(cfg.ProjectRoot, cfg.TodoFile)
	}

	var opts []ui.TUIOption
	if cfg.Debug {
		trace, err := logging.NewTrace(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			return fmt.Errorf("opening debug trace: %w", err)
		}
		defer trace.Close()
		opts = append(opts, ui.WithSink(trace))
	}

	return ui.RunTUI(ctx, cfg, opts...)
}

// lsCommand prints the task list. Loading is strict so a corrupt file is
// reported instead of shown as empty.
func lsCommand(cfg *config.Config, args []string) error {
	// Parse ls-specific flags
	fs := flag.NewFlagSet("gotodo ls", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Show a summary line")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	todoPath := cfg.TodoFile
	if len(remaining) == 1 {
		todoPath = remaining[0]
	}
	if !filepath.IsAbs(todoPath) {
		todoPath = filepath.Join(cfg.ProjectRoot, todoPath)
	}

	list, err := todo.Load(todoPath)
	if err != nil {
		return fmt.Errorf("loading todo file: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	done := 0
	for i, t := range list {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
			done++
		}
		fmt.Printf("%3d %s %s\n", i, mark, t.Text)
	}
	if *verbose {
		fmt.Printf("\n%d tasks, %d done\n", len(list), done)
	}

	return nil
}

// addCommand appends a task from the command line and saves.
func addCommand(cfg *config.Config, args []string) error {
	// Parse add-specific flags
	fs := flag.NewFlagSet("gotodo add", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return fmt.Errorf("add: task text is empty")
	}

	todoPath := cfg.TodoFile
	if !filepath.IsAbs(todoPath) {
		todoPath = filepath.Join(cfg.ProjectRoot, todoPath)
	}

	// A missing or broken file starts over as an empty list, the same
	// recovery the interactive session applies.
	list := todo.LoadOrEmpty(todoPath)
	list.Add(text)
	if err := list.Save(todoPath); err != nil {
		return fmt.Errorf("saving todo file: %w", err)
	}

	newConsoleLogger(cfg).Info("added task", "text", text, "total", len(list))
	return nil
}

// initCommand creates the todo file, schema file, and project config file,
// skipping any that already exist.
func initCommand(cfg *config.Config, args []string) error {
	// Parse init-specific flags
	fs := flag.NewFlagSet("gotodo init", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	todoPath := cfg.TodoFile
	if !filepath.IsAbs(todoPath) {
		todoPath = filepath.Join(cfg.ProjectRoot, todoPath)
	}
	schemaPath := cfg.SchemaFile
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(cfg.ProjectRoot, schemaPath)
	}
	configPath := filepath.Join(cfg.ProjectRoot, "gotodo.toml")

	if err := initFile(todoPath, func(path string) error {
		return todo.List{}.Save(path)
	}); err != nil {
		return err
	}

	if err := initFile(schemaPath, func(path string) error {
		schema, err := todo.BundledSchema()
		if err != nil {
			return fmt.Errorf("get bundled schema: %w", err)
		}
		return os.WriteFile(path, schema, 0644)
	}); err != nil {
		return err
	}

	return initFile(configPath, func(path string) error {
		return os.WriteFile(path, []byte(config.ExampleConfig()), 0644)
	})
}

// initFile creates a file when it does not already exist.
func initFile(path string, create func(string) error) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("path is a directory: %s", path)
		}
		fmt.Printf("  ⚠️  %s already exists, skipping\n", path)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := create(path); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	fmt.Printf("  ✅ Created %s\n", path)
	return nil
}

// doctorCommand checks config, task file, schema, and log directory.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("gotodo doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cws.Config
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	todoPath := cfg.TodoFile
	if len(remaining) == 1 {
		todoPath = remaining[0]
	}
	if !filepath.IsAbs(todoPath) {
		todoPath = filepath.Join(cfg.ProjectRoot, todoPath)
	}
	schemaPath := cfg.SchemaFile
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(cfg.ProjectRoot, schemaPath)
	}

	fmt.Println("gotodo Doctor")
	fmt.Println("=============")
	fmt.Println()

	allOK := true

	// Check project root
	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check config values and where each one came from
	configOK := true
	fmt.Println("Config:")
	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("  Config file: %s\n", file)
	} else {
		fmt.Println("  Config file: (none, using defaults)")
	}
	fmt.Printf("  ✅ todo_file: %s (%s)\n", cfg.TodoFile, sourceOf(cws, "todo_file"))
	fmt.Printf("  ✅ schema_file: %s (%s)\n", cfg.SchemaFile, sourceOf(cws, "schema_file"))
	fmt.Printf("  ✅ log_dir: %s (%s)\n", cfg.LogDir, sourceOf(cws, "log_dir"))
	fmt.Printf("  ✅ debug: %v (%s)\n", cfg.Debug, sourceOf(cws, "debug"))
	fmt.Printf("  ✅ task_pane_width: %d (%s)\n", cfg.TaskPaneWidth, sourceOf(cws, "task_pane_width"))
	if isValidLogLevel(cfg.LogLevel) {
		fmt.Printf("  ✅ log_level: %s (%s)\n", cfg.LogLevel, sourceOf(cws, "log_level"))
	} else {
		fmt.Printf("  ❌ log_level: %s (%s) (expected debug|info|warn|error)\n", cfg.LogLevel, sourceOf(cws, "log_level"))
		configOK = false
	}
	if isValidLogFormat(cfg.LogFormat) {
		fmt.Printf("  ✅ log_format: %s (%s)\n", cfg.LogFormat, sourceOf(cws, "log_format"))
	} else {
		fmt.Printf("  ❌ log_format: %s (%s) (expected text|json|logfmt)\n", cfg.LogFormat, sourceOf(cws, "log_format"))
		configOK = false
	}
	if !configOK {
		allOK = false
	}
	fmt.Println()

	// Check terminal
	fmt.Println("Terminal:")
	if ui.IsTTY(os.Stdout) {
		fmt.Println("  ✅ stdout is a terminal")
	} else {
		fmt.Println("  ⚠️  stdout is not a terminal (the interactive session needs one)")
	}
	fmt.Println()

	// Check todo file
	fmt.Printf("Todo file: %s\n", todoPath)
	todoInfo, err := os.Stat(todoPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (created on first run)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if todoInfo.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
		// Validate the file
		list, loadErr := todo.Load(todoPath)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
		} else {
			result := list.Validate(todo.ValidationOptions{SchemaPath: schemaPath})
			for _, w := range result.Warnings {
				fmt.Printf("  ⚠️  %s\n", w)
			}
			if result.Valid {
				fmt.Println("  ✅ Valid")
			} else {
				fmt.Println("  ❌ Validation failed:")
				for _, e := range result.Errors {
					fmt.Printf("     - %v\n", e)
				}
				allOK = false
			}
			if *verbose {
				fmt.Printf("  Tasks: %d\n", len(list))
				for i, t := range list {
					mark := "[ ]"
					if t.Done {
						mark = "[x]"
					}
					fmt.Printf("    %3d %s %s\n", i, mark, t.Text)
				}
			}
		}
	}
	fmt.Println()

	// Check schema file
	fmt.Printf("Schema file: %s\n", schemaPath)
	if info, err := os.Stat(schemaPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (validation falls back to the bundled schema)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check log directory
	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (created on first debug run)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. gotodo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// tailCommand tails the latest debug trace file.
func tailCommand(cfg *config.Config, args []string) error {
	// Parse tail-specific flags
	fs := flag.NewFlagSet("gotodo tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Find the log directory
	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	// Find the latest JSONL file
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(os.Stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("gotodo version %s\n", Version)
	return nil
}

// newConsoleLogger builds the leveled stderr logger from config.
func newConsoleLogger(cfg *config.Config) *log.Logger {
	return logging.NewConsoleFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller, "gotodo").Logger()
}

// sourceOf returns the recorded source of a config field.
func sourceOf(cws *config.ConfigWithSources, field string) config.ConfigSource {
	if src, ok := cws.Sources[field]; ok {
		return src
	}
	return config.SourceDefault
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "json", "logfmt":
		return true
	}
	return false
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "gotodo - A terminal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gotodo [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]    Open the interactive task list (default command)")
	fmt.Fprintln(w, "  ls [file]     Print tasks")
	fmt.Fprintln(w, "  add <text>    Append a task and save")
	fmt.Fprintln(w, "  init          Create todos.json, todos.schema.json, and gotodo.toml")
	fmt.Fprintln(w, "  doctor [file] Check config, task file, schema, and log directory")
	fmt.Fprintln(w, "  tail          Tail the latest debug trace")
	fmt.Fprintln(w, "  completion <shell>  Print a shell completion script")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -v    Show a summary line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    List tasks in the report")
}
