package tui

import (
	"time"

	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the part of *tea.Program the surface needs.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSurface forwards orchestrator updates into the Bubble Tea loop.
type ProgramSurface struct {
	program Sender
}

var _ application.Surface = (*ProgramSurface)(nil)

func NewProgramSurface(program Sender) *ProgramSurface {
	return &ProgramSurface{program: program}
}

func (s *ProgramSurface) Clock(now time.Time, faulted bool) {
	s.program.Send(ClockMsg{Now: now, Faulted: faulted})
}

func (s *ProgramSurface) Board(board application.Board) {
	s.program.Send(BoardMsg{Board: board})
}

func (s *ProgramSurface) Statuses(board application.Board) {
	s.program.Send(StatusesMsg{Board: board})
}

func (s *ProgramSurface) Language(lang domain.Language) {
	s.program.Send(LanguageMsg{Language: lang})
}
