package application

import (
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
)

// Surface is the display the orchestrator drives. Board is a full rebuild for
// new data; Statuses and Language only touch what they name.
type Surface interface {
	Clock(now time.Time, faulted bool)
	Board(board Board)
	Statuses(board Board)
	Language(lang domain.Language)
}
