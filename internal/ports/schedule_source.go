package ports

import (
	"context"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
)

// LessonSource fetches the lessons a query refers to. Implementations return
// errors wrapping domain.ErrTransport or domain.ErrMalformedResponse.
type LessonSource interface {
	Lessons(ctx context.Context, q domain.Query) (domain.LessonSet, error)
}

type TimeSource interface {
	ServerTime(ctx context.Context) (time.Time, error)
}
