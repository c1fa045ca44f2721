package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prize-draw-backend/internal/features/draw/models"
	"prize-draw-backend/internal/features/draw/repository"
	"prize-draw-backend/internal/features/draw/repository/memory"
	"prize-draw-backend/internal/features/draw/service"
)

func newTestService(store repository.SnapshotStore) *service.DrawService {
	return service.NewDrawService(store).WithRand(func() float64 { return 0 })
}

func sessionRoster() []models.Participant {
	return []models.Participant{
		{Name: "alice", Score: 1200},
		{Name: "bob", Score: 300},
		{Name: "carol", Score: 150},
	}
}

func TestServiceShadowsTransitionsIntoStore(t *testing.T) {
	store := memory.NewSnapshotStore()
	svc := newTestService(store)
	ctx := context.Background()

	svc.LoadParticipants(ctx, sessionRoster(), false)
	_, err := svc.Plan(ctx, models.RoundSettings{
		RoundCount:     2,
		SelectionModel: models.ModelWeightedContinuous,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Begin(ctx))

	name, err := svc.Draw(ctx)
	require.NoError(t, err)
	winner, err := svc.Confirm(ctx, "Grand Prize")
	require.NoError(t, err)
	assert.Equal(t, name, winner.ParticipantName)
	assert.Equal(t, "Grand Prize", winner.PrizeLabel)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted.Winners, 1)
	assert.Equal(t, name, persisted.Winners[0].ParticipantName)
	assert.True(t, persisted.HasStarted)
}

func TestServiceRestoreResumesSession(t *testing.T) {
	store := memory.NewSnapshotStore()
	svc := newTestService(store)
	ctx := context.Background()

	svc.LoadParticipants(ctx, sessionRoster(), false)
	_, err := svc.Plan(ctx, models.RoundSettings{
		RoundCount:     2,
		SelectionModel: models.ModelWeightedContinuous,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Begin(ctx))
	_, err = svc.Draw(ctx)
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, "")
	require.NoError(t, err)

	// A new service instance over the same store picks up where we left off.
	resumed := newTestService(store)
	require.NoError(t, resumed.RestoreSession(ctx))

	state := resumed.State()
	assert.True(t, state.HasStarted)
	assert.Equal(t, 1, state.CurrentRoundIndex)
	require.Len(t, state.Winners, 1)
}

func TestServiceRestoreWithEmptyStoreStartsFresh(t *testing.T) {
	svc := newTestService(memory.NewSnapshotStore())
	require.NoError(t, svc.RestoreSession(context.Background()))
	assert.Equal(t, models.PhaseNotStarted, svc.Phase())
}

func TestServiceResetErasesStoredSnapshot(t *testing.T) {
	store := memory.NewSnapshotStore()
	svc := newTestService(store)
	ctx := context.Background()

	svc.LoadParticipants(ctx, sessionRoster(), false)
	require.NoError(t, svc.Reset(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)
	assert.Equal(t, models.PhaseNotStarted, svc.Phase())
}

func TestServicePlanRejectsInvalidSettings(t *testing.T) {
	svc := newTestService(memory.NewSnapshotStore())
	_, err := svc.Plan(context.Background(), models.RoundSettings{RoundCount: 0, SelectionModel: models.ModelWeightedContinuous})
	assert.ErrorIs(t, err, service.ErrInvalidConfiguration)
}
