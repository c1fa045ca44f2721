package repository

import (
	"context"
	"sync"
	"time"

	"prize-draw-backend/internal/common/logger"
	"prize-draw-backend/internal/features/draw/models"
)

// DebouncedStore wraps a SnapshotStore and coalesces rapid Save calls into
// at most one write per window. Saves are fire-and-forget for the caller;
// the latest snapshot always wins. Snapshots without meaningful progress
// (not started, no participants) are skipped so idle sessions persist
// nothing.
type DebouncedStore struct {
	inner  SnapshotStore
	window time.Duration

	mu      sync.Mutex
	pending *models.DrawState
	timer   *time.Timer
}

func NewDebouncedStore(inner SnapshotStore, window time.Duration) *DebouncedStore {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	return &DebouncedStore{inner: inner, window: window}
}

func (d *DebouncedStore) Save(_ context.Context, state *models.DrawState) error {
	if !state.HasMeaningfulProgress() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = state.Clone()
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.flush)
	}
	return nil
}

func (d *DebouncedStore) flush() {
	d.mu.Lock()
	state := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if state == nil {
		return
	}
	if err := d.inner.Save(context.Background(), state); err != nil {
		logger.Error().Err(err).Msg("Failed to persist draw snapshot")
	}
}

func (d *DebouncedStore) Load(ctx context.Context) (*models.DrawState, error) {
	return d.inner.Load(ctx)
}

// Clear drops both the queued write and the stored snapshot.
func (d *DebouncedStore) Clear(ctx context.Context) error {
	d.mu.Lock()
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	return d.inner.Clear(ctx)
}

// Flush writes any queued snapshot immediately. Called on shutdown.
func (d *DebouncedStore) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.flush()
}
