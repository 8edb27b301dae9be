// Package ui provides the interactive terminal session.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/gotodo/internal/config"
	"github.com/nibzard/gotodo/internal/logging"
)

// TUIOption configures the interactive session.
type TUIOption func(*tuiOptions)

type tuiOptions struct {
	sink logging.Sink
}

// WithSink routes debug events to the given sink in addition to the
// in-memory ring shown in the debug pane.
func WithSink(sink logging.Sink) TUIOption {
	return func(o *tuiOptions) {
		o.sink = sink
	}
}

// RunTUI starts the interactive session with the given config.
func RunTUI(ctx context.Context, cfg *config.Config, opts ...TUIOption) error {
	o := &tuiOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg, o.sink)
	return runProgram(ctx, model)
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	// A failed save means the file no longer matches what the user saw;
	// surface the last one as the session's error.
	if m, ok := finalModel.(*tuiModel); ok {
		if m.saveErr != nil {
			return m.saveErr
		}
	}
	return nil
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
