// Package i18n holds the kiosk's display strings for each supported locale.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"golang.org/x/text/language"
)

type Locale struct {
	Tag           language.Tag
	Days          [7]string
	Months        [12]string
	Status        map[domain.LessonStatus]string
	Headers       map[domain.View][]string
	NoLessons     map[domain.View]string
	MissingParams map[domain.View]string
	LoadingError  string
	Loading       string
	Classroom     string
	Floor         string
	Buildings     map[string]string
}

// StatusText returns the localized label for a lesson status.
func (l Locale) StatusText(status domain.LessonStatus) string {
	if text, ok := l.Status[status]; ok {
		return text
	}

	return string(status)
}

// LongDate renders t as e.g. "Lunedì 2 Marzo 2026".
func (l Locale) LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", l.Days[t.Weekday()], t.Day(), l.Months[t.Month()-1], t.Year())
}

// FloorLabel renders the floor view title, e.g. "Building A - Floor 1".
func (l Locale) FloorLabel(building, floor string) string {
	key := strings.ToUpper(strings.TrimSpace(building))
	name, ok := l.Buildings[key]
	if !ok {
		name = building
	}

	return fmt.Sprintf("%s - %s %s", name, l.Floor, floor)
}

var italian = Locale{
	Tag:    language.Italian,
	Days:   [7]string{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"},
	Months: [12]string{"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno", "Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre"},
	Status: map[domain.LessonStatus]string{
		domain.LessonUpcoming: "Futura",
		domain.LessonOngoing:  "In corso",
		domain.LessonEnded:    "Terminata",
	},
	Headers: map[domain.View][]string{
		domain.ViewClassroom: {"ORARIO", "NOME LEZIONE", "STATO", "PROFESSORE"},
		domain.ViewFloor:     {"AULA", "ORARIO", "NOME LEZIONE", "STATO", "PROFESSORE"},
	},
	NoLessons: map[domain.View]string{
		domain.ViewClassroom: "Nessuna lezione disponibile al momento",
		domain.ViewFloor:     "Nessuna lezione trovata per questo piano al momento",
	},
	MissingParams: map[domain.View]string{
		domain.ViewClassroom: "Parametri 'classroom' o 'building' mancanti",
		domain.ViewFloor:     "Parametri 'building' o 'floor' mancanti",
	},
	LoadingError: "Errore nel caricamento delle lezioni",
	Loading:      "Caricamento delle lezioni...",
	Classroom:    "Aula",
	Floor:        "Piano",
	Buildings:    map[string]string{"A": "Edificio A", "B": "Edificio B", "SBA": "Edificio SBA"},
}

var english = Locale{
	Tag:    language.English,
	Days:   [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Months: [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	Status: map[domain.LessonStatus]string{
		domain.LessonUpcoming: "Upcoming",
		domain.LessonOngoing:  "Ongoing",
		domain.LessonEnded:    "Ended",
	},
	Headers: map[domain.View][]string{
		domain.ViewClassroom: {"TIME", "LESSON NAME", "STATUS", "PROFESSOR"},
		domain.ViewFloor:     {"CLASSROOM", "TIME", "LESSON NAME", "STATUS", "PROFESSOR"},
	},
	NoLessons: map[domain.View]string{
		domain.ViewClassroom: "No lessons available at the moment",
		domain.ViewFloor:     "No lessons found for this floor at the moment",
	},
	MissingParams: map[domain.View]string{
		domain.ViewClassroom: "Missing 'classroom' or 'building' parameters",
		domain.ViewFloor:     "Missing 'building' or 'floor' parameters",
	},
	LoadingError: "Error loading lessons",
	Loading:      "Loading lessons...",
	Classroom:    "Classroom",
	Floor:        "Floor",
	Buildings:    map[string]string{"A": "Building A", "B": "Building B", "SBA": "Building SBA"},
}
