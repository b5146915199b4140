package domain

import (
	"strings"
	"time"
)

// FallbackText is shown in place of an absent lesson field.
const FallbackText = "N/A"

const clockLayout = "15:04"

type Lesson struct {
	LessonName    string
	Instructor    string
	Start         time.Time
	End           time.Time
	ClassroomName string
}

func (l Lesson) DisplayName() string {
	return orFallback(l.LessonName)
}

func (l Lesson) DisplayInstructor() string {
	return orFallback(l.Instructor)
}

func (l Lesson) DisplayClassroom() string {
	return orFallback(l.ClassroomName)
}

// TimeRange formats the lesson span as "HH:MM - HH:MM" in loc.
func (l Lesson) TimeRange(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return l.Start.In(loc).Format(clockLayout) + " - " + l.End.In(loc).Format(clockLayout)
}

// LessonSet is one decoded backend response. Classroom is the room name the
// backend reported, which it also sends when there are no classes.
type LessonSet struct {
	Lessons   []Lesson
	Classroom string
}

func orFallback(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}

	return FallbackText
}
