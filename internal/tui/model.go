// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxVisibleItems limits how many items are rendered at once.
const maxVisibleItems = 15

var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#E5C07B")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	activeItemStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	doneItemStyle = lipgloss.NewStyle().
			Foreground(successColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorItemStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// StatusMsg is a status update for a milestone or issue.
type StatusMsg struct {
	Kind    string // "milestone" or "issue"
	Item    string
	Status  string // "started", "success", "error", "skipped", "warning"
	Message string
}

// doneMsg is delivered once the status channel is closed.
type doneMsg struct{}

// Model for the TUI.
type Model struct {
	title      string
	spinner    spinner.Model
	items      []string
	kinds      map[string]string
	current    int
	status     map[string]string // item -> status
	logs       []string
	errors     int
	finished   bool
	quitting   bool
	statusChan <-chan StatusMsg
}

// NewModel creates a new TUI model.
func NewModel(title string, statusChan <-chan StatusMsg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		title:      title,
		spinner:    s,
		current:    -1,
		kinds:      make(map[string]string),
		status:     make(map[string]string),
		statusChan: statusChan,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatusMsg:
		key := msg.Kind + ":" + msg.Item
		idx := m.indexOf(key)
		if idx < 0 {
			m.items = append(m.items, key)
			m.kinds[key] = msg.Kind
			idx = len(m.items) - 1
		}

		switch msg.Status {
		case "warning":
			// Warnings don't change the item's state.
		case "error":
			m.errors++
			m.status[key] = msg.Status
		default:
			m.status[key] = msg.Status
		}
		if msg.Status == "started" {
			m.current = idx
		}

		if msg.Message != "" && msg.Status != "started" {
			m.logs = append(m.logs, fmt.Sprintf("[%s] %s: %s", time.Now().Format("15:04:05"), msg.Item, msg.Message))
		}

		return m, m.waitForActivity()

	case doneMsg:
		m.finished = true
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// Finished reports whether the view closed because every update was
// delivered, as opposed to the user quitting.
func (m Model) Finished() bool {
	return m.finished
}

func (m Model) indexOf(key string) int {
	for i, item := range m.items {
		if item == key {
			return i
		}
	}
	return -1
}

// waitForActivity blocks until the next update. Long API calls send nothing
// for a while, so there is no idle timeout.
func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.statusChan
		if !ok {
			return doneMsg{}
		}
		return msg
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	start := 0
	if len(m.items) > maxVisibleItems {
		start = len(m.items) - maxVisibleItems
		s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(fmt.Sprintf("  ... %d earlier\n", start)))
	}

	for i, key := range m.items[start:] {
		i += start
		name := strings.TrimPrefix(key, m.kinds[key]+":")
		if m.kinds[key] == "milestone" {
			name = "milestone " + name
		}

		prefix := "  "
		style := itemStyle

		if i == m.current {
			prefix = m.spinner.View() + " "
			style = activeItemStyle
		}

		switch m.status[key] {
		case "success":
			prefix = "✓ "
			style = doneItemStyle
		case "error":
			prefix = "✗ "
			style = errorItemStyle
		case "skipped":
			prefix = "○ "
			style = itemStyle.Faint(true)
		}

		s.WriteString(style.Render(fmt.Sprintf("%s%s\n", prefix, name)))
	}

	s.WriteString("\nLogs:\n")
	// Show last 5 logs
	logStart := 0
	if len(m.logs) > 5 {
		logStart = len(m.logs) - 5
	}
	for _, log := range m.logs[logStart:] {
		s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(log) + "\n")
	}

	if m.errors > 0 {
		s.WriteString("\n" + warningStyle.Render(fmt.Sprintf("%d item(s) failed", m.errors)) + "\n")
	}

	s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render("\nPress q to quit\n"))

	return s.String()
}
