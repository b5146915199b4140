package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/ports"
)

// FetchSnapshot runs one fetch and folds its outcome into a snapshot. It never
// fails: an invalid query yields a MissingParams snapshot without touching the
// source, any other failure an Error snapshot.
func FetchSnapshot(ctx context.Context, source ports.LessonSource, q domain.Query, now time.Time) domain.Snapshot {
	if err := q.Validate(); err != nil {
		return domain.MissingParamsSnapshot(err, now)
	}

	set, err := source.Lessons(ctx, q)
	if err != nil {
		if !errors.Is(err, domain.ErrTransport) && !errors.Is(err, domain.ErrMalformedResponse) {
			err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
		}
		return domain.ErrorSnapshot(err, now)
	}

	return domain.SuccessSnapshot(set, now)
}

// ScheduleStore holds the snapshot currently on display. Every fetch takes a
// sequence number from Begin; a result is applied only if no later-issued
// fetch has been applied already.
type ScheduleStore struct {
	mu      sync.RWMutex
	current domain.Snapshot
	issued  uint64
	applied uint64
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{current: domain.LoadingSnapshot()}
}

func (s *ScheduleStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	return s.issued
}

// Commit stores snapshot if seq is newer than the last applied fetch and
// reports whether it did.
func (s *ScheduleStore) Commit(seq uint64, snapshot domain.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		return false
	}

	s.applied = seq
	s.current = snapshot
	return true
}

func (s *ScheduleStore) Current() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Reset puts the store back into the loading state. Sequence numbers keep
// growing so fetches issued before the reset can never be applied after it.
func (s *ScheduleStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.LoadingSnapshot()
	s.applied = s.issued
}
