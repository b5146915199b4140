// Package tui renders the kiosk board full screen with Bubble Tea.
package tui

import (
	"strings"
	"time"

	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/adapters/render/scroll"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultHeight = 24
	// header block, blank line, column header and rule
	chromeHeight = 5
)

// Model owns everything on screen. Only Update mutates it, so the renderer
// and the scroller never race over the body.
type Model struct {
	renderer *board.Renderer
	scroller *scroll.Boomerang
	viewport viewport.Model
	spinner  spinner.Model

	board   application.Board
	lang    domain.Language
	now     time.Time
	faulted bool

	width  int
	height int

	// wall paces the scroll animation; it is the local clock, not the
	// corrected one shown on screen.
	wall func() time.Time
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
}

func NewModel(renderer *board.Renderer, scrollCfg scroll.Config) Model {
	m := Model{
		renderer: renderer,
		scroller: scroll.New(scrollCfg),
		viewport: viewport.New(board.DefaultWidth, defaultHeight-chromeHeight),
		spinner:  newSpinner(),
		board:    application.Board{Notice: application.NoticeLoading},
		lang:     domain.LanguagePrimary,
		width:    board.DefaultWidth,
		height:   defaultHeight,
		wall:     time.Now,
	}
	m.refreshBody()

	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.scroller.Stop()
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 1)
		m.height = max(msg.Height, chromeHeight+1)
		m.viewport.Width = m.width
		m.viewport.Height = m.height - chromeHeight
		m.refreshBody()
		return m, m.measure()
	case ClockMsg:
		m.now = msg.Now
		m.faulted = msg.Faulted
		return m, nil
	case BoardMsg:
		m.board = msg.Board
		m.refreshBody()
		return m, tea.Batch(m.measure(), m.spin())
	case StatusesMsg:
		m.board = msg.Board
		m.refreshBody()
		return m, nil
	case LanguageMsg:
		m.lang = msg.Language
		m.refreshBody()
		if m.scroller.Resize(m.viewport.TotalLineCount(), m.viewport.Height, m.wall()) {
			return m, m.frame()
		}
		return m, nil
	case scrollFrameMsg:
		if msg.generation != m.scroller.Generation() {
			return m, nil
		}
		more := m.scroller.Advance(msg.at)
		m.viewport.SetYOffset(m.scroller.Offset())
		if more {
			return m, m.frame()
		}
		return m, nil
	case spinner.TickMsg:
		if m.board.Notice != application.NoticeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) View() string {
	clock := m.renderer.Clock(m.now, m.faulted)
	header := lipgloss.NewStyle().
		Width(max(m.width-lipgloss.Width(clock), 0)).
		Render(m.renderer.Header(m.board, m.lang))

	body := m.viewport.View()
	if m.board.Notice == application.NoticeLoading {
		body = m.spinner.View() + " " + body
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, header, clock),
		"",
		m.renderer.Columns(m.board.Heading.View, m.lang, m.width),
		body,
	)
}

// refreshBody re-applies the current board and language to the viewport
// without touching the scroll position.
func (m *Model) refreshBody() {
	lines := m.renderer.BodyLines(m.board, m.lang, m.width)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.SetYOffset(m.scroller.Offset())
}

// measure restarts the scroll cycle for new content.
func (m *Model) measure() tea.Cmd {
	active := m.scroller.Measure(m.viewport.TotalLineCount(), m.viewport.Height, m.wall())
	m.viewport.SetYOffset(0)
	if !active {
		return nil
	}

	return m.frame()
}

func (m *Model) frame() tea.Cmd {
	generation := m.scroller.Generation()
	return tea.Tick(m.scroller.FrameInterval(), func(at time.Time) tea.Msg {
		return scrollFrameMsg{generation: generation, at: at}
	})
}

func (m *Model) spin() tea.Cmd {
	if m.board.Notice != application.NoticeLoading {
		return nil
	}

	return m.spinner.Tick
}

func (m Model) Board() application.Board {
	return m.board
}

func (m Model) Language() domain.Language {
	return m.lang
}

func (m Model) Scroller() *scroll.Boomerang {
	return m.scroller
}
