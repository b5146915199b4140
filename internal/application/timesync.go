package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/lesson-kiosk/internal/ports"
)

var ErrSyncInProgress = errors.New("time sync already in progress")

// TimeSync tracks the offset between the backend's clock and the local one.
// A failed sync resets the offset to zero and raises the fault flag: a stale
// offset is worse than none.
type TimeSync struct {
	source ports.TimeSource
	clock  ports.Clock
	logger *slog.Logger

	inFlight atomic.Bool

	mu       sync.RWMutex
	offset   time.Duration
	faulted  bool
	syncedAt time.Time
}

func NewTimeSync(source ports.TimeSource, clock ports.Clock, logger *slog.Logger) *TimeSync {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TimeSync{source: source, clock: clock, logger: logger}
}

// Sync asks the backend for its time and stores server minus local, measured
// when the response arrives. Overlapping calls return ErrSyncInProgress
// without issuing a request.
func (t *TimeSync) Sync(ctx context.Context) error {
	if !t.inFlight.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer t.inFlight.Store(false)

	serverNow, err := t.source.ServerTime(ctx)
	localNow := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.offset = 0
		t.faulted = true
		t.logger.Warn("time sync failed, using local clock", "error", err)
		return fmt.Errorf("sync server time: %w", err)
	}

	t.offset = serverNow.Sub(localNow)
	t.faulted = false
	t.syncedAt = localNow
	t.logger.Debug("time synchronized", "offset", t.offset)

	return nil
}

func (t *TimeSync) Offset() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.offset
}

// Now is the corrected time: local clock plus the last known offset.
func (t *TimeSync) Now() time.Time {
	return t.clock.Now().Add(t.Offset())
}

func (t *TimeSync) Faulted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.faulted
}

func (t *TimeSync) SyncedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.syncedAt
}

func (t *TimeSync) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.offset = 0
	t.faulted = false
	t.syncedAt = time.Time{}
}
