package domain

import "time"

type LessonStatus string

const (
	LessonUpcoming LessonStatus = "upcoming"
	LessonOngoing  LessonStatus = "ongoing"
	LessonEnded    LessonStatus = "ended"
)

// Classify maps a lesson span to its status at now. Both boundaries count as
// ongoing. Callers pass the server-corrected time, not the raw local clock.
func Classify(now, start, end time.Time) LessonStatus {
	if now.Before(start) {
		return LessonUpcoming
	}
	if now.After(end) {
		return LessonEnded
	}

	return LessonOngoing
}
