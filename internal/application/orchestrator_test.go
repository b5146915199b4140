package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	pollAt  = 5 * time.Millisecond
)

type orchestratorFixture struct {
	clock   *manualClock
	times   *stubTimeSource
	lessons *stubLessonSource
	surface *recordingSurface
	orch    *Orchestrator
}

func newOrchestratorFixture(t *testing.T, q domain.Query, cadence Cadence) *orchestratorFixture {
	t.Helper()

	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	f := &orchestratorFixture{
		clock: newManualClock(now),
		times: &stubTimeSource{server: now},
		lessons: &stubLessonSource{set: domain.LessonSet{
			Lessons: []domain.Lesson{{
				LessonName: "Algorithms",
				Instructor: "Dr. Rossi",
				Start:      now.Add(-30 * time.Minute),
				End:        now.Add(30 * time.Minute),
			}},
		}},
		surface: &recordingSurface{},
	}

	sync := NewTimeSync(f.times, f.clock, discardLogger())
	f.orch = NewOrchestrator(q, f.lessons, sync, f.surface,
		WithCadence(cadence),
		WithClock(f.clock),
		WithLocation(time.UTC),
		WithLogger(discardLogger()))

	return f
}

// run starts the loop and returns a stop function that waits for Run to exit.
func (f *orchestratorFixture) run(t *testing.T) (context.Context, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.orch.Run(ctx)
	}()

	stop := func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Fatal("orchestrator did not stop")
		}
	}
	t.Cleanup(func() {
		cancel()
	})

	return ctx, stop
}

func (f *orchestratorFixture) tick(t *testing.T, ctx context.Context, n int) {
	t.Helper()

	for range n {
		require.True(t, f.clock.Tick(ctx))
	}
}

func (f *orchestratorFixture) waitForRows(t *testing.T) {
	t.Helper()

	require.Eventually(t, func() bool {
		board, _ := f.surface.LastBoard()
		return board.HasRows()
	}, waitFor, pollAt)
}

func testCadence() Cadence {
	return Cadence{Tick: time.Second, LanguageToggleEvery: 3, ResyncEvery: 5}
}

func classroomQuery() domain.Query {
	return domain.Query{View: domain.ViewClassroom, Classroom: "A1", Building: "A", Period: domain.PeriodAll}
}

func TestCadenceDue(t *testing.T) {
	t.Parallel()

	cadence := DefaultCadence()
	tests := []struct {
		tick int
		want Due
	}{
		{tick: 0, want: Due{}},
		{tick: 1, want: Due{}},
		{tick: 15, want: Due{ToggleLanguage: true}},
		{tick: 30, want: Due{ToggleLanguage: true}},
		{tick: 299, want: Due{}},
		{tick: 300, want: Due{ToggleLanguage: true, Resync: true}},
		{tick: 14400, want: Due{ToggleLanguage: true, Resync: true, Reload: true}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cadence.Due(tt.tick), "tick %d", tt.tick)
	}

	cadence.ReloadEvery = 0
	assert.False(t, cadence.Due(14400).Reload)
}

func TestCadenceValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultCadence().Validate())
	assert.Error(t, Cadence{Tick: 0, LanguageToggleEvery: 1, ResyncEvery: 1}.Validate())
	assert.Error(t, Cadence{Tick: time.Second, LanguageToggleEvery: 0, ResyncEvery: 1}.Validate())
	assert.Error(t, Cadence{Tick: time.Second, LanguageToggleEvery: 1, ResyncEvery: 1, ReloadEvery: -1}.Validate())
}

func TestOrchestratorRunRejectsInvalidCadence(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), Cadence{})
	err := f.orch.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, f.lessons.Calls())
}

func TestOrchestratorFirstLoadShowsLessons(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	_, stop := f.run(t)
	defer stop()

	f.waitForRows(t)

	board, _ := f.surface.LastBoard()
	require.Len(t, board.Rows, 1)
	assert.Equal(t, "Algorithms", board.Rows[0].Lesson)
	assert.Equal(t, domain.LessonOngoing, board.Rows[0].Status)
	assert.Equal(t, []domain.Language{domain.LanguagePrimary}, f.surface.Languages())
	assert.Equal(t, 1, f.lessons.Calls())

	f.lessons.mu.Lock()
	assert.Equal(t, "2026-03-02", f.lessons.queries[0].Date)
	f.lessons.mu.Unlock()
}

func TestOrchestratorTogglesLanguageWithoutRefetching(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	ctx, stop := f.run(t)
	defer stop()

	f.waitForRows(t)
	f.tick(t, ctx, 3)

	require.Eventually(t, func() bool {
		return len(f.surface.Languages()) == 2
	}, waitFor, pollAt)
	assert.Equal(t, []domain.Language{domain.LanguagePrimary, domain.LanguageSecondary}, f.surface.Languages())
	assert.Equal(t, 1, f.lessons.Calls())
}

func TestOrchestratorResyncsOnCadence(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	ctx, stop := f.run(t)
	defer stop()

	f.waitForRows(t)
	f.tick(t, ctx, 4)
	assert.Equal(t, 1, f.lessons.Calls())

	f.tick(t, ctx, 1)
	require.Eventually(t, func() bool {
		return f.lessons.Calls() == 2 && f.times.Calls() == 2
	}, waitFor, pollAt)
}

func TestOrchestratorMissingParamsNeverFetches(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, domain.Query{View: domain.ViewFloor, Building: "A"}, testCadence())
	ctx, stop := f.run(t)
	defer stop()

	require.Eventually(t, func() bool {
		board, _ := f.surface.LastBoard()
		return board.Notice == NoticeMissingParams
	}, waitFor, pollAt)

	f.tick(t, ctx, 5)
	require.Eventually(t, func() bool {
		_, n := f.surface.LastBoard()
		return n >= 3
	}, waitFor, pollAt)
	assert.Equal(t, 0, f.lessons.Calls())
}

func TestOrchestratorShowsLoadErrorAndKeepsRunning(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	f.lessons.err = domain.ErrTransport
	ctx, stop := f.run(t)
	defer stop()

	require.Eventually(t, func() bool {
		board, _ := f.surface.LastBoard()
		return board.Notice == NoticeLoadError
	}, waitFor, pollAt)

	f.lessons.mu.Lock()
	f.lessons.err = nil
	f.lessons.mu.Unlock()

	f.tick(t, ctx, 5)
	f.waitForRows(t)
}

func TestOrchestratorUpdatesStatusesOnTick(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	ctx, stop := f.run(t)
	defer stop()

	f.waitForRows(t)
	f.tick(t, ctx, 1)
	assert.Equal(t, 0, f.surface.StatusUpdates())

	f.clock.Set(f.clock.Now().Add(time.Hour))
	f.tick(t, ctx, 1)

	require.Eventually(t, func() bool {
		return f.surface.StatusUpdates() == 1
	}, waitFor, pollAt)

	f.surface.mu.Lock()
	last := f.surface.statuses[len(f.surface.statuses)-1]
	f.surface.mu.Unlock()
	assert.Equal(t, domain.LessonEnded, last.Rows[0].Status)
}

func TestOrchestratorFlagsClockFaultOnSyncFailure(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	f.times.err = errors.New("timeout")
	_, stop := f.run(t)
	defer stop()

	require.Eventually(t, f.surface.Faulted, waitFor, pollAt)
}

func TestOrchestratorReloadResetsState(t *testing.T) {
	t.Parallel()

	cadence := testCadence()
	cadence.ReloadEvery = 4
	f := newOrchestratorFixture(t, classroomQuery(), cadence)
	ctx, stop := f.run(t)
	defer stop()

	f.waitForRows(t)
	f.tick(t, ctx, 4)

	require.Eventually(t, func() bool {
		return f.lessons.Calls() == 2
	}, waitFor, pollAt)
	assert.Equal(t, []domain.Language{domain.LanguagePrimary, domain.LanguageSecondary, domain.LanguagePrimary}, f.surface.Languages())
	f.waitForRows(t)
}

func TestOrchestratorStopsTickerOnCancel(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	_, stop := f.run(t)

	f.waitForRows(t)
	stop()

	assert.True(t, f.clock.ticker.Stopped())
}

func TestOrchestratorPrime(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())

	board, err := f.orch.Prime(context.Background())
	require.NoError(t, err)
	require.True(t, board.HasRows())
	assert.Equal(t, 1, f.lessons.Calls())
	assert.Equal(t, 1, f.times.Calls())

	f.lessons.err = domain.ErrMalformedResponse
	board, err = f.orch.Prime(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, NoticeLoadError, board.Notice)
}

func TestOrchestratorClassifiesWithServerTime(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	f.times.server = f.clock.Now().Add(2 * time.Hour)
	ctx, stop := f.run(t)
	defer stop()

	f.waitForRows(t)
	require.Eventually(t, func() bool {
		return f.orch.timeSync.Offset() == 2*time.Hour
	}, waitFor, pollAt)

	f.tick(t, ctx, 1)
	require.Eventually(t, func() bool {
		if board, ok := f.surface.LastStatuses(); ok {
			return board.Rows[0].Status == domain.LessonEnded
		}
		board, _ := f.surface.LastBoard()
		return board.Rows[0].Status == domain.LessonEnded
	}, waitFor, pollAt)
}

func TestOrchestratorPrimeClassifiesWithServerTime(t *testing.T) {
	t.Parallel()

	f := newOrchestratorFixture(t, classroomQuery(), testCadence())
	f.times.server = f.clock.Now().Add(2 * time.Hour)

	board, err := f.orch.Prime(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Rows, 1)
	assert.Equal(t, domain.LessonEnded, board.Rows[0].Status)
}
