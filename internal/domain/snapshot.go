package domain

import (
	"strings"
	"time"
)

type FetchStatus string

const (
	FetchLoading       FetchStatus = "loading"
	FetchSuccess       FetchStatus = "success"
	FetchError         FetchStatus = "error"
	FetchMissingParams FetchStatus = "missing_params"
)

// Snapshot is one fetch outcome. It replaces any previous snapshot wholesale.
// A successful snapshot with no lessons means "no lessons today".
type Snapshot struct {
	Lessons   []Lesson
	Status    FetchStatus
	FetchedAt time.Time
	Classroom string
	Err       error
}

func LoadingSnapshot() Snapshot {
	return Snapshot{Status: FetchLoading}
}

func SuccessSnapshot(set LessonSet, fetchedAt time.Time) Snapshot {
	lessons := make([]Lesson, len(set.Lessons))
	copy(lessons, set.Lessons)

	return Snapshot{
		Lessons:   lessons,
		Status:    FetchSuccess,
		FetchedAt: fetchedAt,
		Classroom: strings.TrimSpace(set.Classroom),
	}
}

func ErrorSnapshot(err error, fetchedAt time.Time) Snapshot {
	return Snapshot{Status: FetchError, FetchedAt: fetchedAt, Err: err}
}

func MissingParamsSnapshot(err error, fetchedAt time.Time) Snapshot {
	return Snapshot{Status: FetchMissingParams, FetchedAt: fetchedAt, Err: err}
}

func (s Snapshot) HasLessons() bool {
	return s.Status == FetchSuccess && len(s.Lessons) > 0
}

// ClassroomName prefers the name the backend reported for the response and
// falls back to the first lesson's room.
func (s Snapshot) ClassroomName() string {
	if s.Classroom != "" {
		return s.Classroom
	}
	for _, lesson := range s.Lessons {
		if name := strings.TrimSpace(lesson.ClassroomName); name != "" {
			return name
		}
	}

	return ""
}
