package application

import (
	"cmp"
	"slices"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/samber/lo"
)

// Notice selects the single full-width message shown instead of lesson rows.
type Notice string

const (
	NoticeNone          Notice = ""
	NoticeLoading       Notice = "loading"
	NoticeMissingParams Notice = "missing_params"
	NoticeLoadError     Notice = "load_error"
	NoticeNoLessons     Notice = "no_lessons"
)

type Heading struct {
	View      domain.View
	Classroom string
	Building  string
	Floor     string
	Date      time.Time
}

type Row struct {
	Classroom  string
	TimeRange  string
	Lesson     string
	Instructor string
	Status     domain.LessonStatus
	Start      time.Time
	End        time.Time
}

// Board is the language-independent projection of a snapshot. Localized text
// is chosen when a board is applied to a display, so switching language never
// recomputes rows.
type Board struct {
	Heading Heading
	Notice  Notice
	Rows    []Row
}

// RenderBoard projects a snapshot into display rows. Floor rows are ordered by
// start time because the backend order is not trusted; classroom rows keep the
// snapshot order.
func RenderBoard(snapshot domain.Snapshot, q domain.Query, now time.Time, loc *time.Location) Board {
	if loc == nil {
		loc = time.Local
	}

	board := Board{
		Heading: Heading{
			View:      q.View,
			Classroom: snapshot.ClassroomName(),
			Building:  q.Building,
			Floor:     q.Floor,
			Date:      displayDate(q.DateOn(now, loc), loc),
		},
	}

	switch {
	case snapshot.Status == domain.FetchLoading:
		board.Notice = NoticeLoading
		return board
	case snapshot.Status == domain.FetchMissingParams:
		board.Notice = NoticeMissingParams
		return board
	case snapshot.Status == domain.FetchError:
		board.Notice = NoticeLoadError
		return board
	case len(snapshot.Lessons) == 0:
		board.Notice = NoticeNoLessons
		return board
	}

	lessons := slices.Clone(snapshot.Lessons)
	if q.View == domain.ViewFloor {
		slices.SortStableFunc(lessons, func(a, b domain.Lesson) int {
			if c := a.Start.Compare(b.Start); c != 0 {
				return c
			}
			return cmp.Compare(a.ClassroomName, b.ClassroomName)
		})
	}

	board.Rows = lo.Map(lessons, func(lesson domain.Lesson, _ int) Row {
		return Row{
			Classroom:  lesson.DisplayClassroom(),
			TimeRange:  lesson.TimeRange(loc),
			Lesson:     lesson.DisplayName(),
			Instructor: lesson.DisplayInstructor(),
			Status:     domain.Classify(now, lesson.Start, lesson.End),
			Start:      lesson.Start,
			End:        lesson.End,
		}
	})

	return board
}

func (b Board) HasRows() bool {
	return b.Notice == NoticeNone && len(b.Rows) > 0
}

// WithStatuses reclassifies every row at now. The row set is unchanged; the
// second result reports whether any status moved.
func (b Board) WithStatuses(now time.Time) (Board, bool) {
	if len(b.Rows) == 0 {
		return b, false
	}

	changed := false
	rows := make([]Row, len(b.Rows))
	for i, row := range b.Rows {
		status := domain.Classify(now, row.Start, row.End)
		if status != row.Status {
			changed = true
		}
		row.Status = status
		rows[i] = row
	}

	if !changed {
		return b, false
	}

	b.Rows = rows
	return b, true
}

func displayDate(date string, loc *time.Location) time.Time {
	parsed, err := time.ParseInLocation(domain.DateLayout, date, loc)
	if err != nil {
		return time.Time{}
	}

	return parsed.Add(12 * time.Hour)
}
