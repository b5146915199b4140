package application

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/ports"
)

type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	ticker *manualTicker
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{now: now, ticker: &manualTicker{ch: make(chan time.Time)}}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

func (c *manualClock) NewTicker(time.Duration) ports.Ticker {
	return c.ticker
}

// Tick delivers one tick; it blocks until the loop receives it.
func (c *manualClock) Tick(ctx context.Context) bool {
	select {
	case c.ticker.ch <- c.Now():
		return true
	case <-ctx.Done():
		return false
	}
}

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time {
	return t.ch
}

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
}

func (t *manualTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stopped
}

type stubTimeSource struct {
	mu      sync.Mutex
	server  time.Time
	err     error
	calls   int
	entered chan struct{}
	release chan struct{}
	onCall  func()
}

func (s *stubTimeSource) ServerTime(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	s.calls++
	entered, release, onCall := s.entered, s.release, s.onCall
	server, err := s.server, s.err
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
	if onCall != nil {
		onCall()
	}

	return server, err
}

func (s *stubTimeSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

type stubLessonSource struct {
	mu      sync.Mutex
	set     domain.LessonSet
	err     error
	calls   int
	queries []domain.Query
}

func (s *stubLessonSource) Lessons(_ context.Context, q domain.Query) (domain.LessonSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.queries = append(s.queries, q)
	return s.set, s.err
}

func (s *stubLessonSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

type recordingSurface struct {
	mu        sync.Mutex
	boards    []Board
	statuses  []Board
	languages []domain.Language
	clocks    []time.Time
	faulted   bool
}

func (s *recordingSurface) Clock(now time.Time, faulted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clocks = append(s.clocks, now)
	s.faulted = faulted
}

func (s *recordingSurface) Board(board Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards = append(s.boards, board)
}

func (s *recordingSurface) Statuses(board Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses = append(s.statuses, board)
}

func (s *recordingSurface) Language(lang domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.languages = append(s.languages, lang)
}

func (s *recordingSurface) LastBoard() (Board, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.boards) == 0 {
		return Board{}, 0
	}
	return s.boards[len(s.boards)-1], len(s.boards)
}

func (s *recordingSurface) Languages() []domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.Language(nil), s.languages...)
}

func (s *recordingSurface) Faulted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.faulted
}

func (s *recordingSurface) StatusUpdates() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.statuses)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *recordingSurface) LastStatuses() (Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.statuses) == 0 {
		return Board{}, false
	}
	return s.statuses[len(s.statuses)-1], true
}
