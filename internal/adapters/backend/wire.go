package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
)

type lessonsRequest struct {
	Classroom string `json:"classroom"`
	Building  string `json:"building"`
	Date      string `json:"date"`
	Period    string `json:"period"`
}

type timeResponse struct {
	Time string `json:"time"`
}

type lessonRow struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	LessonName    string `json:"lesson_name"`
	Instructor    string `json:"instructor"`
	ClassroomName string `json:"classroom_name"`
	Message       string `json:"message"`
}

// noClasses is the object form the backend uses instead of an empty array.
type noClasses struct {
	Message       string `json:"message"`
	Error         string `json:"error"`
	ClassroomName string `json:"classroom_name"`
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

func decodeServerTime(body []byte, loc *time.Location) (time.Time, error) {
	var payload timeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return time.Time{}, fmt.Errorf("%w: decode time: %w", domain.ErrMalformedResponse, err)
	}

	ts, err := parseTimestamp(payload.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time field: %w", domain.ErrMalformedResponse, err)
	}

	return ts, nil
}

// decodeLessons accepts an array of lesson rows, an array whose row carries a
// message, or an object with message/error. The last two mean no classes.
func decodeLessons(body []byte, loc *time.Location) (domain.LessonSet, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return domain.LessonSet{}, fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	}

	if trimmed[0] == '{' {
		var marker noClasses
		if err := json.Unmarshal(trimmed, &marker); err != nil {
			return domain.LessonSet{}, fmt.Errorf("%w: decode lessons: %w", domain.ErrMalformedResponse, err)
		}
		if strings.TrimSpace(marker.Message) == "" && strings.TrimSpace(marker.Error) == "" {
			return domain.LessonSet{}, fmt.Errorf("%w: object without message", domain.ErrMalformedResponse)
		}
		return domain.LessonSet{Classroom: strings.TrimSpace(marker.ClassroomName)}, nil
	}

	if trimmed[0] != '[' {
		return domain.LessonSet{}, fmt.Errorf("%w: expected an array, got %.20s", domain.ErrMalformedResponse, trimmed)
	}

	var rows []lessonRow
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return domain.LessonSet{}, fmt.Errorf("%w: decode lessons: %w", domain.ErrMalformedResponse, err)
	}

	set := domain.LessonSet{Lessons: make([]domain.Lesson, 0, len(rows))}
	for i, row := range rows {
		if strings.TrimSpace(row.Message) != "" {
			return domain.LessonSet{Classroom: strings.TrimSpace(row.ClassroomName)}, nil
		}

		start, err := parseTimestamp(row.StartTime, loc)
		if err != nil {
			return domain.LessonSet{}, fmt.Errorf("%w: row %d start_time: %w", domain.ErrMalformedResponse, i, err)
		}
		end, err := parseTimestamp(row.EndTime, loc)
		if err != nil {
			return domain.LessonSet{}, fmt.Errorf("%w: row %d end_time: %w", domain.ErrMalformedResponse, i, err)
		}

		set.Lessons = append(set.Lessons, domain.Lesson{
			LessonName:    row.LessonName,
			Instructor:    row.Instructor,
			Start:         start,
			End:           end,
			ClassroomName: row.ClassroomName,
		})
		if set.Classroom == "" {
			set.Classroom = strings.TrimSpace(row.ClassroomName)
		}
	}

	return set, nil
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
