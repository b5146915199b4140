package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/ports"
	"golang.org/x/sync/errgroup"
)

// Cadence counts every periodic behaviour in ticks of the same loop.
type Cadence struct {
	Tick                time.Duration
	LanguageToggleEvery int
	ResyncEvery         int
	// ReloadEvery resets all display state. Zero disables it.
	ReloadEvery int
}

func DefaultCadence() Cadence {
	return Cadence{
		Tick:                time.Second,
		LanguageToggleEvery: 15,
		ResyncEvery:         300,
		ReloadEvery:         4 * 60 * 60,
	}
}

type Due struct {
	ToggleLanguage bool
	Resync         bool
	Reload         bool
}

// Due reports which periodic actions fire on the given tick (1-based).
func (c Cadence) Due(tick int) Due {
	return Due{
		ToggleLanguage: every(tick, c.LanguageToggleEvery),
		Resync:         every(tick, c.ResyncEvery),
		Reload:         every(tick, c.ReloadEvery),
	}
}

func (c Cadence) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	if c.LanguageToggleEvery <= 0 || c.ResyncEvery <= 0 {
		return fmt.Errorf("language toggle and resync cadences must be positive, got %d and %d", c.LanguageToggleEvery, c.ResyncEvery)
	}
	if c.ReloadEvery < 0 {
		return fmt.Errorf("reload cadence must not be negative, got %d", c.ReloadEvery)
	}

	return nil
}

func every(tick, n int) bool {
	return n > 0 && tick > 0 && tick%n == 0
}

// Orchestrator runs the display loop. All display state is owned by the loop
// goroutine; network work runs on its own goroutines and hands its result back
// to the loop as a closure.
type Orchestrator struct {
	query    domain.Query
	lessons  ports.LessonSource
	timeSync *TimeSync
	store    *ScheduleStore
	surface  Surface

	cadence  Cadence
	clock    ports.Clock
	location *time.Location
	logger   *slog.Logger

	ticks       int
	lang        domain.Language
	board       Board
	completions chan func()
	wg          sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithCadence(cadence Cadence) Option {
	return func(o *Orchestrator) {
		o.cadence = cadence
	}
}

func WithClock(clock ports.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

func WithLocation(loc *time.Location) Option {
	return func(o *Orchestrator) {
		o.location = loc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func NewOrchestrator(
	query domain.Query,
	lessons ports.LessonSource,
	timeSync *TimeSync,
	surface Surface,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		query:       query,
		lessons:     lessons,
		timeSync:    timeSync,
		store:       NewScheduleStore(),
		surface:     surface,
		cadence:     DefaultCadence(),
		clock:       ports.SystemClock{},
		location:    time.Local,
		logger:      slog.Default(),
		completions: make(chan func()),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run drives the surface until ctx is cancelled. It waits for in-flight
// network work before returning.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.cadence.Validate(); err != nil {
		return fmt.Errorf("invalid cadence: %w", err)
	}

	ticker := o.clock.NewTicker(o.cadence.Tick)
	defer ticker.Stop()
	defer o.wg.Wait()

	o.logger.Info("Starting display loop",
		"view", o.query.View,
		"tick", o.cadence.Tick,
		"language_toggle_ticks", o.cadence.LanguageToggleEvery,
		"resync_ticks", o.cadence.ResyncEvery)

	o.start(ctx)

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("Display loop stopping")
			return nil
		case <-ticker.C():
			o.tick(ctx)
		case apply := <-o.completions:
			apply()
		}
	}
}

// Prime performs one fetch and one time sync concurrently and returns the
// resulting board. The returned error is the fetch failure, if any.
func (o *Orchestrator) Prime(ctx context.Context) (Board, error) {
	query := o.resolvedQuery(o.clock.Now())
	seq := o.store.Begin()

	var snapshot domain.Snapshot
	var g errgroup.Group
	g.Go(func() error {
		snapshot = FetchSnapshot(ctx, o.lessons, query, o.clock.Now())
		return nil
	})
	g.Go(func() error {
		return o.timeSync.Sync(ctx)
	})
	if err := g.Wait(); err != nil {
		o.logger.Warn("Time sync failed during first load", "error", err)
	}

	o.store.Commit(seq, snapshot)
	o.board = RenderBoard(snapshot, query, o.timeSync.Now(), o.location)

	return o.board, snapshot.Err
}

func (o *Orchestrator) start(ctx context.Context) {
	o.ticks = 0
	o.lang = domain.LanguagePrimary

	now := o.timeSync.Now()
	o.board = RenderBoard(o.store.Current(), o.resolvedQuery(now), now, o.location)

	o.surface.Language(o.lang)
	o.surface.Board(o.board)
	o.surface.Clock(now, o.timeSync.Faulted())

	o.resync(ctx)
}

func (o *Orchestrator) tick(ctx context.Context) {
	o.ticks++

	now := o.timeSync.Now()
	o.surface.Clock(now, o.timeSync.Faulted())
	if board, changed := o.board.WithStatuses(now); changed {
		o.board = board
		o.surface.Statuses(board)
	}

	due := o.cadence.Due(o.ticks)
	if due.Reload {
		o.reload(ctx)
		return
	}
	if due.ToggleLanguage {
		o.lang = o.lang.Toggle()
		o.surface.Language(o.lang)
	}
	if due.Resync {
		o.resync(ctx)
	}
}

func (o *Orchestrator) reload(ctx context.Context) {
	o.logger.Info("Reloading display state", "ticks", o.ticks)

	o.store.Reset()
	o.timeSync.Reset()
	o.start(ctx)
}

// resync launches the schedule fetch and the time sync side by side. Their
// completions are independent and each re-renders only what it affects.
func (o *Orchestrator) resync(ctx context.Context) {
	query := o.resolvedQuery(o.timeSync.Now())
	seq := o.store.Begin()

	o.launch(ctx, func(ctx context.Context) func() {
		snapshot := FetchSnapshot(ctx, o.lessons, query, o.timeSync.Now())
		return func() {
			if !o.store.Commit(seq, snapshot) {
				o.logger.Debug("Discarding stale schedule response", "seq", seq)
				return
			}
			if snapshot.Err != nil {
				o.logger.Warn("Schedule fetch failed", "status", snapshot.Status, "error", snapshot.Err)
			}

			now := o.timeSync.Now()
			o.board = RenderBoard(snapshot, query, now, o.location)
			o.surface.Board(o.board)
		}
	})

	o.launch(ctx, func(ctx context.Context) func() {
		if err := o.timeSync.Sync(ctx); errors.Is(err, ErrSyncInProgress) {
			return nil
		}
		return func() {
			o.surface.Clock(o.timeSync.Now(), o.timeSync.Faulted())
		}
	})
}

func (o *Orchestrator) launch(ctx context.Context, work func(context.Context) func()) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		apply := work(ctx)
		if apply == nil {
			return
		}

		select {
		case o.completions <- apply:
		case <-ctx.Done():
		}
	}()
}

func (o *Orchestrator) resolvedQuery(now time.Time) domain.Query {
	q := o.query
	q.Date = q.DateOn(now, o.location)
	return q
}
