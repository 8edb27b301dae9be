package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pane geometry in terminal rows and columns, borders included.
const (
	promptPaneHeight = 3
	debugPaneHeight  = 8
	debugPaneEntries = 6
	minMainHeight    = 8
	minFillerWidth   = 60

	// Used until the first WindowSizeMsg arrives.
	fallbackWidth  = 80
	fallbackHeight = 24
)

var (
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("4"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const helpText = `gotodo - Keyboard Shortcuts

Navigation:
• ↑/↓ or j/k  Navigate tasks
• Space       Toggle task completion
• q           Quit application

Task Management:
• a           Add new task
• d           Delete selected task

Interface:
• Ctrl+Space  Hide/show todo list
• h           Show/hide this help
• Esc         Close help or cancel action

Press any key to close this help...`

func (m *tuiModel) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}

	showPrompt := m.mode == modeAdding || m.mode == modeConfirmDelete

	mainHeight := height
	if showPrompt {
		mainHeight -= promptPaneHeight
	}
	if m.debug {
		mainHeight -= debugPaneHeight
	}
	if mainHeight < minMainHeight {
		mainHeight = minMainHeight
	}

	sections := []string{m.viewMain(width, mainHeight)}
	if showPrompt {
		sections = append(sections, m.viewPrompt(width))
	}
	if m.debug {
		sections = append(sections, m.viewDebug(width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewMain renders the top pane: the help overlay, the task list with its
// left filler region, or blank space when the list is hidden.
func (m *tuiModel) viewMain(width, height int) string {
	if m.mode == modeHelp {
		box := paneStyle.Width(width - 2).Height(height - 2).Render(helpText)
		return withTitle(box, "Help")
	}
	if !m.visible {
		return lipgloss.NewStyle().Width(width).Height(height).Render("")
	}

	paneWidth := m.cfg.TaskPaneWidth
	fillerWidth := width - paneWidth
	if fillerWidth < minFillerWidth {
		fillerWidth = minFillerWidth
		paneWidth = width - fillerWidth
	}
	if paneWidth <= 2 {
		return lipgloss.NewStyle().Width(width).Height(height).Render("")
	}

	filler := lipgloss.NewStyle().Width(fillerWidth).Height(height).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, filler, m.viewTaskPane(paneWidth, height))
}

func (m *tuiModel) viewTaskPane(width, height int) string {
	var rows []string
	maxRows := height - 2
	for i, task := range m.list {
		if i >= maxRows {
			break
		}
		prefix := "[ ]"
		if task.Done {
			prefix = "[x]"
		}
		line := truncate(prefix+" "+task.Text, width-2)
		if i == m.sel {
			line = selectedStyle.Render(line)
		}
		rows = append(rows, line)
	}

	title := "TODO (h=help)"
	if m.mode != modeNormal {
		title = "TODO"
	}
	if m.status != "" {
		title = statusStyle.Render(truncate(m.status, width-2))
	}

	box := paneStyle.Width(width - 2).Height(height - 2).Render(strings.Join(rows, "\n"))
	return withTitle(box, title)
}

func (m *tuiModel) viewPrompt(width int) string {
	var text string
	switch m.mode {
	case modeAdding:
		text = m.input.View()
	case modeConfirmDelete:
		if len(m.list) > 0 && m.sel < len(m.list) {
			text = truncate(fmt.Sprintf("Delete '%s' ? (y/n)", m.list[m.sel].Text), width-2)
		} else {
			text = "No task to delete"
		}
	}
	box := paneStyle.Width(width - 2).Height(1).Render(text)
	return withTitle(box, "Prompt")
}

func (m *tuiModel) viewDebug(width int) string {
	var lines []string
	for _, event := range m.ring.Tail(debugPaneEntries) {
		lines = append(lines, truncate(event.Message, width-2))
	}
	box := paneStyle.Width(width - 2).Height(debugPaneHeight - 2).Render(strings.Join(lines, "\n"))
	return withTitle(box, "Debug")
}

// withTitle overlays a title onto the top border of a rendered box.
func withTitle(box, title string) string {
	if title == "" {
		return box
	}
	i := strings.Index(box, "\n")
	if i < 0 {
		return box
	}
	top := []rune(box[:i])
	tw := lipgloss.Width(title)
	if tw+2 > len(top) {
		return box
	}
	return string(top[:1]) + title + string(top[1+tw:]) + box[i:]
}

// truncate cuts s to at most max display columns.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
