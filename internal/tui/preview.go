// Package tui implements the interactive preview: the planned moves are
// shown for review and nothing touches the filesystem until confirmed.
package tui

import (
	"fmt"
	"strings"

	"github.com/Digital-Shane/library-tidy/internal/media"
	"github.com/Digital-Shane/library-tidy/internal/plan"
	"github.com/Digital-Shane/library-tidy/internal/tui/theme"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ExecuteFunc performs one planned move. Only Ready plans are passed in.
type ExecuteFunc func(p plan.Plan) error

type execProgressMsg struct {
	outcome plan.Outcome
}

type execDoneMsg struct{}

// PreviewModel is the Bubble Tea model for the plan review screen.
type PreviewModel struct {
	plans   []plan.Plan
	execute ExecuteFunc
	theme   theme.Theme

	cursor int
	offset int
	width  int
	height int

	executing bool
	done      bool
	aborted   bool
	progress  progress.Model
	completed int
	outcomes  []plan.Outcome
	msgCh     chan tea.Msg
}

// NewPreviewModel creates the preview over a planned batch.
func NewPreviewModel(plans []plan.Plan, execute ExecuteFunc, th theme.Theme) *PreviewModel {
	gradient := th.ProgressGradient()
	p := progress.New(progress.WithGradient(gradient[0], gradient[1]))
	p.Width = 50

	return &PreviewModel{
		plans:    plans,
		execute:  execute,
		theme:    th,
		width:    80,
		height:   24,
		progress: p,
		msgCh:    make(chan tea.Msg, 64),
	}
}

// Outcomes returns the execution results, empty when nothing ran.
func (m *PreviewModel) Outcomes() []plan.Outcome {
	return m.outcomes
}

// Aborted reports whether the user quit without applying the plan.
func (m *PreviewModel) Aborted() bool {
	return m.aborted
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) waitForMsg() tea.Cmd {
	return func() tea.Msg { return <-m.msgCh }
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case execProgressMsg:
		m.completed++
		m.outcomes = append(m.outcomes, msg.outcome)
		ratio := float64(m.completed) / float64(max(m.readyCount(), 1))
		cmd := m.progress.SetPercent(ratio)
		return m, tea.Batch(cmd, m.waitForMsg())

	case execDoneMsg:
		m.executing = false
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m *PreviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.executing {
		// The batch finishes; interrupting mid-move risks partial state.
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.visibleRows())
	case "pgdown":
		m.moveCursor(m.visibleRows())
	case "home":
		m.cursor = 0
		m.offset = 0
	case "end":
		m.moveCursor(len(m.plans))
	case "y", "enter":
		if m.readyCount() == 0 {
			m.aborted = true
			return m, tea.Quit
		}
		m.executing = true
		go m.runExecution()
		return m, m.waitForMsg()
	}

	return m, nil
}

func (m *PreviewModel) runExecution() {
	for _, p := range m.plans {
		if p.Status != plan.StatusReady {
			continue
		}
		err := m.execute(p)
		m.msgCh <- execProgressMsg{outcome: plan.Outcome{
			Plan:  p,
			Moved: err == nil,
			Err:   err,
		}}
	}
	m.msgCh <- execDoneMsg{}
}

func (m *PreviewModel) readyCount() int {
	n := 0
	for _, p := range m.plans {
		if p.Status == plan.StatusReady {
			n++
		}
	}
	return n
}

func (m *PreviewModel) visibleRows() int {
	// Header, status bar, and padding consume four lines.
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *PreviewModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.plans) {
		m.cursor = len(m.plans) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *PreviewModel) View() string {
	header := m.theme.HeaderStyle().Width(m.width).
		Render(fmt.Sprintf("Library Preview · %d files, %d to move", len(m.plans), m.readyCount()))

	rows := m.visibleRows()
	var lines []string
	for i := m.offset; i < len(m.plans) && i < m.offset+rows; i++ {
		lines = append(lines, m.renderRow(i))
	}
	if len(m.plans) == 0 {
		lines = append(lines, m.theme.MutedStyle().Render("No media files found."))
	}

	var status string
	switch {
	case m.executing:
		status = m.progress.View()
	case m.done:
		status = m.theme.StatusBarStyle().Width(m.width).Render("Done.")
	default:
		status = m.theme.StatusBarStyle().Width(m.width).
			Render("↑/↓ scroll · y/enter apply · q quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(lines, "\n"),
		status,
	)
}

func (m *PreviewModel) renderRow(i int) string {
	p := m.plans[i]

	icon := m.theme.Icon(statusIconKey(p))
	text := rowText(p)
	line := truncate(fmt.Sprintf("%s %s", icon, text), m.width)

	if i == m.cursor && !m.executing {
		return m.theme.SelectedStyle().Render(line)
	}
	switch p.Status {
	case plan.StatusReady:
		return m.theme.SuccessStyle().Render(line)
	case plan.StatusConflict, plan.StatusUnparseable:
		return m.theme.ErrorStyle().Render(line)
	default:
		return m.theme.MutedStyle().Render(line)
	}
}

func statusIconKey(p plan.Plan) string {
	switch p.Status {
	case plan.StatusReady:
		if p.Kind == media.KindMovie {
			return "movie"
		}
		return "show"
	case plan.StatusNoOp:
		return "noop"
	case plan.StatusConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

func rowText(p plan.Plan) string {
	switch p.Status {
	case plan.StatusReady:
		return fmt.Sprintf("%s → %s", p.Source, p.Target)
	case plan.StatusNoOp:
		return fmt.Sprintf("%s (already in place)", p.Source)
	default:
		return fmt.Sprintf("%s (%s)", p.Source, p.Reason)
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
