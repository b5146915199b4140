package board

import (
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title       lipgloss.Style
	date        lipgloss.Style
	clock       lipgloss.Style
	clockFault  lipgloss.Style
	header      lipgloss.Style
	cell        lipgloss.Style
	lesson      lipgloss.Style
	notice      lipgloss.Style
	rule        lipgloss.Style
	statusDot   map[domain.LessonStatus]lipgloss.Style
	statusLabel lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		date:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		clock:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		clockFault: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
		cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		lesson:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		notice:     lipgloss.NewStyle().Faint(true),
		rule:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		statusDot: map[domain.LessonStatus]lipgloss.Style{
			domain.LessonUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.LessonOngoing:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			domain.LessonEnded:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		statusLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}

func (s styles) dot(status domain.LessonStatus) lipgloss.Style {
	if style, ok := s.statusDot[status]; ok {
		return style
	}

	return s.statusLabel
}
