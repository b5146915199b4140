package domain

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DateLayout is the wire format of schedule dates.
const DateLayout = "2006-01-02"

type View string

const (
	ViewClassroom View = "classroom"
	ViewFloor     View = "floor"
)

type Period string

const (
	PeriodAll       Period = "all"
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
)

func ParsePeriod(value string) (Period, error) {
	switch period := Period(strings.ToLower(strings.TrimSpace(value))); period {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodMorning, PeriodAfternoon:
		return period, nil
	default:
		return "", fmt.Errorf("unsupported period %q (want all, morning or afternoon)", value)
	}
}

// ParseDate checks a YYYY-MM-DD date. An empty value is accepted and means
// "today" at fetch time.
func ParseDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, trimmed); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}

	return trimmed, nil
}

// Query identifies what a kiosk displays. Classroom and Period only apply to
// the classroom view, Floor only to the floor view.
type Query struct {
	View      View
	Classroom string
	Building  string
	Floor     string
	Date      string
	Period    Period
}

var (
	classroomKeys = []string{"classroom", "aula"}
	buildingKeys  = []string{"building", "edificio"}
	floorKeys     = []string{"floor", "piano"}
)

// QueryFromValues reads kiosk page parameters, including the localized
// aliases. Unparseable dates and periods fall back to their defaults.
func QueryFromValues(view View, values url.Values) Query {
	q := Query{
		View:      view,
		Classroom: firstValue(values, classroomKeys),
		Building:  firstValue(values, buildingKeys),
		Floor:     firstValue(values, floorKeys),
		Period:    PeriodAll,
	}

	if date, err := ParseDate(values.Get("date")); err == nil {
		q.Date = date
	}
	if view == ViewClassroom {
		if period, err := ParsePeriod(values.Get("period")); err == nil {
			q.Period = period
		}
	}

	return q
}

// ViewFromPath picks the view a kiosk page path refers to.
func ViewFromPath(p string) View {
	if strings.Contains(strings.ToLower(path.Base(p)), "floor") {
		return ViewFloor
	}

	return ViewClassroom
}

func (q Query) Validate() error {
	var missing []string
	switch q.View {
	case ViewFloor:
		if q.Building == "" {
			missing = append(missing, "building")
		}
		if q.Floor == "" {
			missing = append(missing, "floor")
		}
	case ViewClassroom:
		if q.Classroom == "" {
			missing = append(missing, "classroom")
		}
		if q.Building == "" {
			missing = append(missing, "building")
		}
	default:
		return fmt.Errorf("%w: unknown view %q", ErrMissingParams, q.View)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingParams, strings.Join(missing, ", "))
	}

	return nil
}

// DateOn returns the query date, or the date of now in loc when unset.
func (q Query) DateOn(now time.Time, loc *time.Location) string {
	if q.Date != "" {
		return q.Date
	}
	if loc == nil {
		loc = time.Local
	}

	return now.In(loc).Format(DateLayout)
}

func firstValue(values url.Values, keys []string) string {
	key, _ := lo.Find(keys, func(key string) bool {
		return strings.TrimSpace(values.Get(key)) != ""
	})

	return strings.TrimSpace(values.Get(key))
}
