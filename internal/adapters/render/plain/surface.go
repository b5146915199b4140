// Package plain prints the board as text blocks for consoles without a TTY.
package plain

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
)

// Surface re-prints the whole board whenever rows, statuses or the language
// change. Clock updates are only remembered for the next print.
type Surface struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *board.Renderer
	width    int
	logger   *slog.Logger

	board   application.Board
	lang    domain.Language
	now     time.Time
	faulted bool
}

var _ application.Surface = (*Surface)(nil)

func NewSurface(out io.Writer, renderer *board.Renderer, width int, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}

	return &Surface{
		out:      out,
		renderer: renderer,
		width:    width,
		logger:   logger,
		board:    application.Board{Notice: application.NoticeLoading},
		lang:     domain.LanguagePrimary,
	}
}

func (s *Surface) Clock(now time.Time, faulted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
	s.faulted = faulted
}

func (s *Surface) Board(b application.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board = b
	s.print()
}

func (s *Surface) Statuses(b application.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board = b
	s.print()
}

func (s *Surface) Language(lang domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lang == s.lang && s.board.Notice == application.NoticeLoading {
		return
	}
	s.lang = lang
	s.print()
}

func (s *Surface) print() {
	block := s.renderer.Static(s.board, board.RenderOptions{
		Language: s.lang,
		Now:      s.now,
		Faulted:  s.faulted,
		Width:    s.width,
	})

	if _, err := fmt.Fprintf(s.out, "%s\n\n", block); err != nil {
		s.logger.Warn("Failed to print board", "error", err)
	}
}
