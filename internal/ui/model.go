package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/gotodo/internal/config"
	"github.com/nibzard/gotodo/internal/logging"
	"github.com/nibzard/gotodo/internal/todo"
)

// uiMode identifies which input mode the session is in.
type uiMode int

const (
	modeNormal uiMode = iota
	modeAdding
	modeConfirmDelete
	modeHelp
)

func (m uiMode) String() string {
	switch m {
	case modeNormal:
		return "Normal"
	case modeAdding:
		return "Adding"
	case modeConfirmDelete:
		return "ConfirmDelete"
	case modeHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

const (
	// debugRingCapacity bounds the in-memory debug log; oldest entries are
	// evicted first.
	debugRingCapacity = 20
	// statusTimeout is how long a save failure stays on the title line.
	statusTimeout = 3 * time.Second
)

// clearStatusMsg clears the transient status line.
type clearStatusMsg struct{}

type tuiModel struct {
	cfg      *config.Config
	todoPath string

	list    todo.List
	sel     int
	mode    uiMode
	visible bool
	input   textinput.Model

	debug bool
	ring  *logging.Ring
	sink  logging.Sink

	status  string
	saveErr error

	width  int
	height int
}

func newTUIModel(cfg *config.Config, sink logging.Sink) *tuiModel {
	input := textinput.New()
	input.Prompt = "Add task: "

	m := &tuiModel{
		cfg:      cfg,
		todoPath: cfg.TodoFile,
		list:     todo.LoadOrEmpty(cfg.TodoFile),
		mode:     modeNormal,
		visible:  true,
		input:    input,
		debug:    cfg.Debug,
		sink:     sink,
	}
	if m.debug {
		m.ring = logging.NewRing(debugRingCapacity)
		m.logDebug("Debug mode enabled")
		m.logDebug("UI visible: %v", m.visible)
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Keep the input from wrapping inside the 3-row prompt pane.
		if w := msg.Width - 2 - len(m.input.Prompt) - 1; w > 0 {
			m.input.Width = w
		}
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input housekeeping while editing.
	if m.mode == modeAdding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.logDebug("Key pressed: %s", key)

	// ctrl+c quits from any mode.
	if key == "ctrl+c" {
		m.logDebug("Quitting application")
		return m, tea.Quit
	}

	switch m.mode {
	case modeAdding:
		return m.handleAddingKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeHelp:
		return m.handleHelpKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *tuiModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q":
		m.logDebug("Quitting application")
		return m, tea.Quit
	case "ctrl+@": // ctrl+space
		m.visible = !m.visible
		m.logDebug("UI toggled: visible=%v", m.visible)
		return m, nil
	}

	// Everything below operates on the task list and is gated on visibility.
	if m.visible {
		switch key {
		case " ":
			if m.list.Toggle(m.sel) {
				m.logDebug("Task %d toggled: done=%v", m.sel, m.list[m.sel].Done)
				return m, m.saveList()
			}
			return m, nil
		case "a":
			m.mode = modeAdding
			m.input.Reset()
			m.logDebug("Entered task creation mode")
			return m, m.input.Focus()
		case "d":
			if len(m.list) > 0 {
				m.mode = modeConfirmDelete
				m.logDebug("Entered delete confirmation mode")
				return m, nil
			}
			// An empty list leaves d unhandled.
		case "h":
			m.mode = modeHelp
			m.logDebug("Showing help")
			return m, nil
		case "down", "j":
			old := m.sel
			m.sel = m.list.ClampIndex(m.sel + 1)
			if old != m.sel {
				m.logDebug("Selection moved down: %d -> %d", old, m.sel)
			}
			return m, nil
		case "up", "k":
			old := m.sel
			if m.sel > 0 {
				m.sel--
			}
			if old != m.sel {
				m.logDebug("Selection moved up: %d -> %d", old, m.sel)
			}
			return m, nil
		}
	}

	m.logDebug("Unhandled key in %s mode: %s", m.mode, key)
	return m, nil
}

func (m *tuiModel) handleAddingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		var cmd tea.Cmd
		if m.list.Add(m.input.Value()) {
			m.logDebug("Added task: %q", m.list[len(m.list)-1].Text)
			cmd = m.saveList()
		}
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		return m, cmd
	case "esc":
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.logDebug("Cancelled task creation")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "y", "Y":
		var cmd tea.Cmd
		if task, ok := m.list.Remove(m.sel); ok {
			m.sel = m.list.ClampIndex(m.sel)
			m.logDebug("Deleted task: %q", task.Text)
			cmd = m.saveList()
		}
		m.mode = modeNormal
		return m, cmd
	case "n", "N", "esc":
		m.mode = modeNormal
		m.logDebug("Cancelled task deletion")
		return m, nil
	default:
		m.logDebug("Unhandled key in %s mode: %s", m.mode, key)
		return m, nil
	}
}

func (m *tuiModel) handleHelpKey(tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.logDebug("Closed help")
	return m, nil
}

// saveList writes the list to disk. On failure the in-memory state keeps the
// mutation; the error is shown on the title line and cleared after a timeout.
func (m *tuiModel) saveList() tea.Cmd {
	if err := m.list.Save(m.todoPath); err != nil {
		m.saveErr = err
		m.status = fmt.Sprintf("save failed: %v", err)
		m.logDebug("Save failed: %v", err)
		return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	m.saveErr = nil
	return nil
}

// logDebug records a debug event in the ring and any external sink.
func (m *tuiModel) logDebug(format string, args ...any) {
	if !m.debug {
		return
	}
	event := logging.NewEvent(format, args...)
	_ = m.ring.Write(event)
	if m.sink != nil {
		_ = m.sink.Write(event)
	}
}
