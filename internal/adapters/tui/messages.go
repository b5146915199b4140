package tui

import (
	"time"

	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
)

type ClockMsg struct {
	Now     time.Time
	Faulted bool
}

type BoardMsg struct {
	Board application.Board
}

type StatusesMsg struct {
	Board application.Board
}

type LanguageMsg struct {
	Language domain.Language
}

// scrollFrameMsg is one animation frame. Frames from an older generation are
// dropped.
type scrollFrameMsg struct {
	generation uint64
	at         time.Time
}
