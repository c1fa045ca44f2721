package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prize-draw-backend/internal/features/draw/models"
	"prize-draw-backend/internal/features/draw/repository"
	"prize-draw-backend/internal/features/draw/repository/memory"
)

func progressedState(marker int) *models.DrawState {
	return &models.DrawState{
		HasStarted:        true,
		CurrentRoundIndex: marker,
		AllParticipants:   []models.Participant{{Name: "a", Score: 100, Status: models.StatusEligible}},
	}
}

func TestDebouncedStoreCoalescesRapidSaves(t *testing.T) {
	inner := memory.NewSnapshotStore()
	store := repository.NewDebouncedStore(inner, 30*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Save(ctx, progressedState(i)))
	}

	assert.Equal(t, 0, inner.SaveCount(), "nothing written inside the window")

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, inner.SaveCount(), "one coalesced write after the window")

	loaded, err := inner.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.CurrentRoundIndex, "latest snapshot wins")
}

func TestDebouncedStoreSkipsIdleSnapshots(t *testing.T) {
	inner := memory.NewSnapshotStore()
	store := repository.NewDebouncedStore(inner, 10*time.Millisecond)

	empty := &models.DrawState{}
	require.NoError(t, store.Save(context.Background(), empty))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, inner.SaveCount(), "idle sessions persist nothing")
}

func TestDebouncedStoreClearDropsQueuedWrite(t *testing.T) {
	inner := memory.NewSnapshotStore()
	store := repository.NewDebouncedStore(inner, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, progressedState(1)))
	require.NoError(t, store.Clear(ctx))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, inner.SaveCount())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)
}

func TestDebouncedStoreFlushWritesImmediately(t *testing.T) {
	inner := memory.NewSnapshotStore()
	store := repository.NewDebouncedStore(inner, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, progressedState(3)))
	store.Flush()

	assert.Equal(t, 1, inner.SaveCount())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.CurrentRoundIndex)
}
