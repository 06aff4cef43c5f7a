package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/scaffold/internal/ui"
	"github.com/sokinpui/scaffold/model"
	"github.com/sokinpui/scaffold/scaffold"
)

// --- Messages ---
type reportMsg struct {
	model.Report
}

type progressMsg struct {
	current int
	total   int
	path    string
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// Progress builds the message that reports a block starting to process.
func Progress(current, total int, path string) tea.Msg {
	return progressMsg{current: current, total: total, path: path}
}

// --- Model ---
type Model struct {
	app      *scaffold.App
	spinner  spinner.Model
	state    state
	progress progressMsg
	report   model.Report
	err      error
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

func New(app *scaffold.App) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		spinner: s,
		state:   stateProcessing,
	}
}

// Err returns the error the run ended with, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.progress = msg
		return m, tea.Println(ui.ProgressLine(msg.path))

	case reportMsg:
		m.state = stateSummary
		m.report = msg.Report
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.progress.total == 0 {
			return fmt.Sprintf("%s Reading %s...", m.spinner.View(), m.app.SourceName())
		}
		return fmt.Sprintf("%s Writing [%d/%d] %s", m.spinner.View(), m.progress.current, m.progress.total,
			ui.FaintStyle.Render(m.progress.path))
	case stateError:
		return ui.ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	case stateSummary:
		return ui.RenderReport(m.report)
	default:
		return ""
	}
}

func (m Model) runApp() tea.Msg {
	report, err := m.app.Execute()
	if err != nil {
		// Check for detailed error to print stack
		if e, ok := err.(*scaffold.DetailedError); ok {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", e.Stack)
		}
		return errorMsg{err}
	}
	return reportMsg{Report: report}
}
