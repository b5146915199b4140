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

func TestTimeSyncStoresServerMinusLocalOffset(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := newManualClock(local)
	source := &stubTimeSource{server: local.Add(90 * time.Second)}
	sync := NewTimeSync(source, clock, discardLogger())

	require.NoError(t, sync.Sync(context.Background()))

	assert.Equal(t, 90*time.Second, sync.Offset())
	assert.Equal(t, local.Add(90*time.Second), sync.Now())
	assert.False(t, sync.Faulted())
	assert.Equal(t, local, sync.SyncedAt())
}

func TestTimeSyncMeasuresLocalClockAtReceipt(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := newManualClock(local)
	server := local.Add(-30 * time.Second)
	source := &stubTimeSource{
		server: server,
		onCall: func() { clock.Set(local.Add(2 * time.Second)) },
	}
	sync := NewTimeSync(source, clock, discardLogger())

	require.NoError(t, sync.Sync(context.Background()))

	assert.Equal(t, -32*time.Second, sync.Offset())
}

func TestTimeSyncFailureFallsBackToZeroOffset(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := newManualClock(local)
	source := &stubTimeSource{server: local.Add(time.Minute)}
	sync := NewTimeSync(source, clock, discardLogger())

	require.NoError(t, sync.Sync(context.Background()))
	require.Equal(t, time.Minute, sync.Offset())

	source.mu.Lock()
	source.err = domain.ErrTransport
	source.mu.Unlock()

	err := sync.Sync(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Equal(t, time.Duration(0), sync.Offset())
	assert.Equal(t, local, sync.Now())
	assert.True(t, sync.Faulted())

	source.mu.Lock()
	source.err = nil
	source.mu.Unlock()

	require.NoError(t, sync.Sync(context.Background()))
	assert.False(t, sync.Faulted())
}

func TestTimeSyncRejectsOverlappingCalls(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	source := &stubTimeSource{
		server:  local,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	sync := NewTimeSync(source, newManualClock(local), discardLogger())

	done := make(chan error, 1)
	go func() {
		done <- sync.Sync(context.Background())
	}()
	<-source.entered

	err := sync.Sync(context.Background())
	assert.True(t, errors.Is(err, ErrSyncInProgress))
	assert.Equal(t, 1, source.Calls())

	close(source.release)
	require.NoError(t, <-done)

	source.mu.Lock()
	source.entered = nil
	source.release = nil
	source.mu.Unlock()

	require.NoError(t, sync.Sync(context.Background()))
	assert.Equal(t, 2, source.Calls())
}

func TestTimeSyncReset(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	source := &stubTimeSource{err: domain.ErrTransport}
	sync := NewTimeSync(source, newManualClock(local), discardLogger())

	require.Error(t, sync.Sync(context.Background()))
	require.True(t, sync.Faulted())

	sync.Reset()
	assert.False(t, sync.Faulted())
	assert.Equal(t, time.Duration(0), sync.Offset())
}
