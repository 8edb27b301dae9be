// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/BurntSushi/toml"
)

// defaultSources returns a source map with every field attributed to defaults.
func defaultSources() map[string]ConfigSource {
	sources := make(map[string]ConfigSource)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	return sources
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TodoFile != DefaultTodoFile {
		t.Errorf("TodoFile: got %q, want %q", cfg.TodoFile, DefaultTodoFile)
	}
	if cfg.SchemaFile != DefaultSchemaFile {
		t.Errorf("SchemaFile: got %q, want %q", cfg.SchemaFile, DefaultSchemaFile)
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, DefaultLogDir)
	}
	if cfg.Debug {
		t.Error("Debug: got true, want false")
	}
	if cfg.TaskPaneWidth != DefaultTaskPaneWidth {
		t.Errorf("TaskPaneWidth: got %d, want %d", cfg.TaskPaneWidth, DefaultTaskPaneWidth)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "gotodo.toml")

	content := []byte(`todo_file = "custom.json"
debug = true
task_pane_width = 44
log_level = "debug"
`)
	if err := os.WriteFile(configFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadConfigFile(cfg, configFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.TodoFile != "custom.json" {
		t.Errorf("TodoFile: got %q, want custom.json", cfg.TodoFile)
	}
	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
	if cfg.TaskPaneWidth != 44 {
		t.Errorf("TaskPaneWidth: got %d, want 44", cfg.TaskPaneWidth)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.SchemaFile != DefaultSchemaFile {
		t.Errorf("SchemaFile: got %q, want default %q", cfg.SchemaFile, DefaultSchemaFile)
	}
}

func TestLoadConfigFileWithSources(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "gotodo.toml")

	content := []byte(`todo_file = "tracked.json"
debug = false
`)
	if err := os.WriteFile(configFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	cfg.Debug = true // simulate an earlier layer turning debug on

	sources := defaultSources()
	if err := loadConfigFileWithSources(cfg, configFile, sources, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFileWithSources: %v", err)
	}

	if cfg.TodoFile != "tracked.json" {
		t.Errorf("TodoFile: got %q, want tracked.json", cfg.TodoFile)
	}
	if cfg.Debug {
		t.Error("Debug: got true, want false (explicit file value)")
	}
	if sources["todo_file"] != SourceProjFile {
		t.Errorf("source of todo_file: got %q, want %q", sources["todo_file"], SourceProjFile)
	}
	if sources["debug"] != SourceProjFile {
		t.Errorf("source of debug: got %q, want %q (explicit false should be attributed)", sources["debug"], SourceProjFile)
	}
	if sources["log_dir"] != SourceDefault {
		t.Errorf("source of log_dir: got %q, want %q", sources["log_dir"], SourceDefault)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOTODO_TODO", "env-todo.json")
	t.Setenv("GOTODO_DEBUG", "yes")
	t.Setenv("GOTODO_TASK_PANE_WIDTH", "44")
	t.Setenv("GOTODO_LOG_LEVEL", "debug")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.TodoFile != "env-todo.json" {
		t.Errorf("TodoFile: got %q, want env-todo.json", cfg.TodoFile)
	}
	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
	if cfg.TaskPaneWidth != 44 {
		t.Errorf("TaskPaneWidth: got %d, want 44", cfg.TaskPaneWidth)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestLoadFromEnvInvalidWidth(t *testing.T) {
	t.Setenv("GOTODO_TASK_PANE_WIDTH", "not-a-number")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.TaskPaneWidth != DefaultTaskPaneWidth {
		t.Errorf("TaskPaneWidth: got %d, want default %d", cfg.TaskPaneWidth, DefaultTaskPaneWidth)
	}
}

func TestLoadFromEnvWithSources(t *testing.T) {
	t.Setenv("GOTODO_SCHEMA", "env.schema.json")
	t.Setenv("GOTODO_LOG_CALLER", "1")

	cfg := &Config{}
	setDefaults(cfg)
	sources := defaultSources()
	loadFromEnvWithSources(cfg, sources)

	if cfg.SchemaFile != "env.schema.json" {
		t.Errorf("SchemaFile: got %q, want env.schema.json", cfg.SchemaFile)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if sources["schema_file"] != SourceEnv {
		t.Errorf("source of schema_file: got %q, want %q", sources["schema_file"], SourceEnv)
	}
	if sources["log_caller"] != SourceEnv {
		t.Errorf("source of log_caller: got %q, want %q", sources["log_caller"], SourceEnv)
	}
	if sources["todo_file"] != SourceDefault {
		t.Errorf("source of todo_file: got %q, want %q", sources["todo_file"], SourceDefault)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{
		"--todo", "flag-todo.json",
		"--task-pane-width", "25",
		"--debug",
		"--log-format", "logfmt",
	}

	if err := parseFlags(cfg, fs, args); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.TodoFile != "flag-todo.json" {
		t.Errorf("TodoFile: got %q, want flag-todo.json", cfg.TodoFile)
	}
	if cfg.TaskPaneWidth != 25 {
		t.Errorf("TaskPaneWidth: got %d, want 25", cfg.TaskPaneWidth)
	}
	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
}

func TestParseFlagsWithSources(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.TodoFile = "from-file.json" // simulate a config file layer

	sources := defaultSources()
	sources["todo_file"] = SourceProjFile

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{"--debug", "--log-level", "error"}

	if err := parseFlagsWithSources(cfg, fs, args, sources); err != nil {
		t.Fatalf("parseFlagsWithSources: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
	if cfg.TodoFile != "from-file.json" {
		t.Errorf("TodoFile: got %q, want from-file.json (unset flags should not override)", cfg.TodoFile)
	}
	if sources["debug"] != SourceFlag {
		t.Errorf("source of debug: got %q, want %q", sources["debug"], SourceFlag)
	}
	if sources["log_level"] != SourceFlag {
		t.Errorf("source of log_level: got %q, want %q", sources["log_level"], SourceFlag)
	}
	if sources["todo_file"] != SourceProjFile {
		t.Errorf("source of todo_file: got %q, want %q", sources["todo_file"], SourceProjFile)
	}
}

func TestFinalizeConfig(t *testing.T) {
	t.Run("relative paths join project root", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfg := &Config{
			TodoFile:      "todos.json",
			SchemaFile:    "todos.schema.json",
			LogDir:        tmpDir,
			TaskPaneWidth: DefaultTaskPaneWidth,
			ProjectRoot:   tmpDir,
		}
		if err := finalizeConfig(cfg); err != nil {
			t.Fatalf("finalizeConfig: %v", err)
		}
		if want := filepath.Join(tmpDir, "todos.json"); cfg.TodoFile != want {
			t.Errorf("TodoFile: got %q, want %q", cfg.TodoFile, want)
		}
		if want := filepath.Join(tmpDir, "todos.schema.json"); cfg.SchemaFile != want {
			t.Errorf("SchemaFile: got %q, want %q", cfg.SchemaFile, want)
		}
	})

	t.Run("absolute paths kept", func(t *testing.T) {
		cfg := &Config{
			TodoFile:      filepath.Join(t.TempDir(), "t.json"),
			SchemaFile:    filepath.Join(t.TempDir(), "s.json"),
			LogDir:        t.TempDir(),
			TaskPaneWidth: DefaultTaskPaneWidth,
			ProjectRoot:   t.TempDir(),
		}
		wantTodo := cfg.TodoFile
		if err := finalizeConfig(cfg); err != nil {
			t.Fatalf("finalizeConfig: %v", err)
		}
		if cfg.TodoFile != wantTodo {
			t.Errorf("TodoFile: got %q, want %q", cfg.TodoFile, wantTodo)
		}
	})

	t.Run("empty project root falls back to working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		cfg := &Config{
			TodoFile:      "todos.json",
			SchemaFile:    "todos.schema.json",
			LogDir:        t.TempDir(),
			TaskPaneWidth: DefaultTaskPaneWidth,
		}
		if err := finalizeConfig(cfg); err != nil {
			t.Fatalf("finalizeConfig: %v", err)
		}
		if cfg.ProjectRoot != wd {
			t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, wd)
		}
	})

	t.Run("log dir tilde expanded", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("Cannot get home directory")
		}
		cfg := &Config{
			TodoFile:      "todos.json",
			SchemaFile:    "todos.schema.json",
			LogDir:        "~/.gotodo",
			TaskPaneWidth: DefaultTaskPaneWidth,
			ProjectRoot:   t.TempDir(),
		}
		if err := finalizeConfig(cfg); err != nil {
			t.Fatalf("finalizeConfig: %v", err)
		}
		if want := filepath.Join(home, ".gotodo"); cfg.LogDir != want {
			t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
		}
	})

	widths := []struct {
		name string
		in   int
		want int
	}{
		{"narrow clamps to default", 5, DefaultTaskPaneWidth},
		{"zero clamps to default", 0, DefaultTaskPaneWidth},
		{"minimum kept", 10, 10},
		{"wide kept", 48, 48},
	}
	for _, tt := range widths {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				TodoFile:      "todos.json",
				SchemaFile:    "todos.schema.json",
				LogDir:        t.TempDir(),
				TaskPaneWidth: tt.in,
				ProjectRoot:   t.TempDir(),
			}
			if err := finalizeConfig(cfg); err != nil {
				t.Fatalf("finalizeConfig: %v", err)
			}
			if cfg.TaskPaneWidth != tt.want {
				t.Errorf("TaskPaneWidth: got %d, want %d", cfg.TaskPaneWidth, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("redirecting the home directory is unreliable on Windows")
	}

	fakeHome := t.TempDir()
	t.Setenv("HOME", fakeHome)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(fakeHome, ".config"))

	projectDir := t.TempDir()
	content := []byte("debug = true\ntask_pane_width = 42\n")
	if err := os.WriteFile(filepath.Join(projectDir, "gotodo.toml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(projectDir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	t.Setenv("GOTODO_TODO", "env-todo.json")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"--log-level", "debug"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug: got false, want true (project file)")
	}
	if cfg.TaskPaneWidth != 42 {
		t.Errorf("TaskPaneWidth: got %d, want 42 (project file)", cfg.TaskPaneWidth)
	}
	if filepath.Base(cfg.TodoFile) != "env-todo.json" {
		t.Errorf("TodoFile: got %q, want env-todo.json basename (environment)", cfg.TodoFile)
	}
	if !filepath.IsAbs(cfg.TodoFile) {
		t.Errorf("TodoFile: got relative path %q, want absolute", cfg.TodoFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug (flag)", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want default text", cfg.LogFormat)
	}
}

func TestLoadWithSources(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("redirecting the home directory is unreliable on Windows")
	}

	fakeHome := t.TempDir()
	t.Setenv("HOME", fakeHome)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(fakeHome, ".config"))

	userDir := filepath.Join(fakeHome, ".gotodo")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	userConf := []byte("log_level = \"warn\"\ndebug = true\n")
	if err := os.WriteFile(filepath.Join(userDir, "gotodo.toml"), userConf, 0644); err != nil {
		t.Fatal(err)
	}

	projectDir := t.TempDir()
	projConf := []byte("todo_file = \"project.json\"\ndebug = false\n")
	if err := os.WriteFile(filepath.Join(projectDir, "gotodo.toml"), projConf, 0644); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(projectDir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	t.Setenv("GOTODO_LOG_FORMAT", "json")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--task-pane-width", "50"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	cfg := cws.Config
	if cfg.Debug {
		t.Error("Debug: got true, want false (project file overrides user file)")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if cfg.TaskPaneWidth != 50 {
		t.Errorf("TaskPaneWidth: got %d, want 50", cfg.TaskPaneWidth)
	}

	wantSources := map[string]ConfigSource{
		"todo_file":       SourceProjFile,
		"debug":           SourceProjFile,
		"log_level":       SourceUserFile,
		"log_format":      SourceEnv,
		"task_pane_width": SourceFlag,
		"schema_file":     SourceDefault,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("source of %s: got %q, want %q", field, got, want)
		}
	}

	if got := cws.GetConfigFile(); got != "gotodo.toml" {
		t.Errorf("GetConfigFile: got %q, want gotodo.toml", got)
	}
}

func TestFindProjectConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	if got := findProjectConfigFile(); got != "" {
		t.Errorf("empty dir: got %q, want empty", got)
	}

	if err := os.WriteFile(".gotodo.toml", []byte("debug = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := findProjectConfigFile(); got != ".gotodo.toml" {
		t.Errorf("hidden file: got %q, want .gotodo.toml", got)
	}

	if err := os.WriteFile("gotodo.toml", []byte("debug = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := findProjectConfigFile(); got != "gotodo.toml" {
		t.Errorf("both present: got %q, want gotodo.toml", got)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := boolFromString(tt.input)
			if got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}
	if runtime.GOOS == "windows" {
		t.Setenv("GOTODO_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `~\test`,
			want:  filepath.Join(home, "test"),
		}, struct {
			input string
			want  string
		}{
			input: `%GOTODO_TEST_HOME%\logs`,
			want:  filepath.Join(home, "logs"),
		})
	} else {
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `~\test`,
			want:  `~\test`,
		})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExampleConfig(t *testing.T) {
	cfg := &Config{}
	if _, err := toml.Decode(ExampleConfig(), cfg); err != nil {
		t.Fatalf("ExampleConfig does not parse as TOML: %v", err)
	}

	if cfg.TodoFile != DefaultTodoFile {
		t.Errorf("TodoFile: got %q, want %q", cfg.TodoFile, DefaultTodoFile)
	}
	if cfg.SchemaFile != DefaultSchemaFile {
		t.Errorf("SchemaFile: got %q, want %q", cfg.SchemaFile, DefaultSchemaFile)
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, DefaultLogDir)
	}
	if cfg.TaskPaneWidth != DefaultTaskPaneWidth {
		t.Errorf("TaskPaneWidth: got %d, want %d", cfg.TaskPaneWidth, DefaultTaskPaneWidth)
	}
}
