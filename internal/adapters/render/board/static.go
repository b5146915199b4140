package board

import (
	"time"

	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderOptions describes one static rendering of a board.
type RenderOptions struct {
	Language domain.Language
	Now      time.Time
	Faulted  bool
	Width    int
}

// Static lays out header, clock, columns and body as one block, for one-shot
// and plain output.
func (r *Renderer) Static(board application.Board, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(width-len(clockLayout)).Render(r.Header(board, opts.Language)),
		r.Clock(opts.Now, opts.Faulted))

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		"",
		r.Columns(board.Heading.View, opts.Language, width),
		r.Body(board, opts.Language, width))
}
