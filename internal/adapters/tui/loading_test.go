package tui

import (
	"testing"
	"time"

	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoading(t *testing.T, heading application.Heading) Loading {
	t.Helper()

	catalog, err := i18n.NewCatalog("it", "en")
	require.NoError(t, err)

	return NewLoading(board.NewRenderer(catalog, time.UTC), application.Board{Heading: heading}, 60)
}

func TestLoadingShowsHeadingAndLoadingText(t *testing.T) {
	m := newTestLoading(t, application.Heading{View: domain.ViewFloor, Building: "A", Floor: "1"})

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Edificio A - Piano 1")
	assert.Contains(t, view, "Caricamento delle lezioni...")
	assert.NotNil(t, m.Init())
}

func TestLoadingQuitsOnFirstBoard(t *testing.T) {
	m := newTestLoading(t, application.Heading{View: domain.ViewClassroom})

	next, cmd := m.Update(BoardMsg{Board: boardWithRows(1)})
	loaded, ok := next.(Loading)
	require.True(t, ok)

	assert.True(t, loaded.Done())
	assert.Empty(t, loaded.View())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestLoadingIgnoresOtherKeys(t *testing.T) {
	m := newTestLoading(t, application.Heading{View: domain.ViewClassroom})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.False(t, next.(Loading).Done())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
