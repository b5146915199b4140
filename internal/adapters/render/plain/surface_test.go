package plain

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/i18n"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfacePrintsOnDataAndLanguageChanges(t *testing.T) {
	catalog, err := i18n.NewCatalog("it", "en")
	require.NoError(t, err)

	var out bytes.Buffer
	surface := NewSurface(&out, board.NewRenderer(catalog, time.UTC), 80, nil)

	surface.Language(domain.LanguagePrimary)
	surface.Clock(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), false)
	assert.Empty(t, out.String())

	surface.Board(application.Board{
		Heading: application.Heading{View: domain.ViewClassroom, Classroom: "Aula A1"},
		Rows: []application.Row{{
			TimeRange: "09:00 - 10:00", Lesson: "Algorithms", Instructor: "Dr. Rossi", Status: domain.LessonOngoing,
		}},
	})
	first := ansi.Strip(out.String())
	assert.Contains(t, first, "Aula A1")
	assert.Contains(t, first, "09:30:00")
	assert.Contains(t, first, "In corso")

	out.Reset()
	surface.Language(domain.LanguageSecondary)
	second := ansi.Strip(out.String())
	assert.Contains(t, second, "Ongoing")
	assert.Equal(t, 1, strings.Count(second, "Algorithms"))
}
