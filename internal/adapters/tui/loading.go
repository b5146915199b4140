package tui

import (
	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Loading shows the pending board's heading with a spinner until the first
// BoardMsg arrives, then quits leaving nothing on screen.
type Loading struct {
	renderer *board.Renderer
	spinner  spinner.Model
	pending  application.Board
	width    int
	done     bool
}

func NewLoading(renderer *board.Renderer, pending application.Board, width int) Loading {
	if width <= 0 {
		width = board.DefaultWidth
	}
	pending.Notice = application.NoticeLoading

	return Loading{
		renderer: renderer,
		spinner:  newSpinner(),
		pending:  pending,
		width:    width,
	}
}

func (m Loading) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Loading) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BoardMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Loading) View() string {
	if m.done {
		return ""
	}

	status := m.spinner.View() + " " +
		m.renderer.Body(m.pending, domain.LanguagePrimary, max(m.width-lipgloss.Width(m.spinner.View())-1, 1))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderer.Header(m.pending, domain.LanguagePrimary),
		status)
}

func (m Loading) Done() bool {
	return m.done
}
