// Package tui renders a terminal progress bar for the icon-fetching
// run, fed by pipeline progress events.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AnDsergey13/New-tab/internal/pipeline"
)

// maxLogLines bounds how many recent warnings stay on screen.
const maxLogLines = 6

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// Message types
type (
	// EventMsg wraps a pipeline progress event.
	EventMsg struct {
		Event pipeline.ProgressEvent
	}

	// DoneMsg is sent when the run finishes, successfully or not.
	DoneMsg struct {
		Summary *pipeline.Summary
		Err     error
	}
)

// Model is the Bubble Tea model displaying run progress.
type Model struct {
	spinner  spinner.Model
	progress progress.Model

	done    int
	total   int
	logs    []string
	summary *pipeline.Summary
	err     error

	cancel context.CancelFunc
	width  int
}

// NewModel creates the progress model. cancel is invoked when the user
// interrupts the run with ctrl+c.
func NewModel(cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		spinner:  sp,
		progress: prog,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 12
		if m.progress.Width > 70 {
			m.progress.Width = 70
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case EventMsg:
		if msg.Event.Total > 0 {
			m.done = msg.Event.Done
			m.total = msg.Event.Total
		}
		switch msg.Event.Level {
		case pipeline.LevelWarning, pipeline.LevelError:
			m.logs = append(m.logs, msg.Event.Message)
			if len(m.logs) > maxLogLines {
				m.logs = m.logs[len(m.logs)-maxLogLines:]
			}
		}
		return m, nil

	case DoneMsg:
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Downloading icons"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(fmt.Sprintf("%s %s %d/%d\n",
		m.spinner.View(), m.progress.ViewAs(percent), m.done, m.total))

	for _, line := range m.logs {
		b.WriteString(warningStyle.Render("! " + line))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.summary != nil {
		b.WriteString("\n" + successStyle.Render(
			fmt.Sprintf("Done. Success: %d, Fail: %d", m.summary.Succeeded, m.summary.Failed)) + "\n")
	} else {
		b.WriteString("\n" + dimStyle.Render("ctrl+c to cancel") + "\n")
	}

	return b.String()
}
