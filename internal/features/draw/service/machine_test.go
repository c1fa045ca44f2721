package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prize-draw-backend/internal/features/draw/models"
)

// firstPick always lands on the first participant holding at least one entry.
func firstPick() float64 { return 0 }

func testRoster() []models.Participant {
	return []models.Participant{
		{Name: "dana", Score: 1200},
		{Name: "eve", Score: 1200},
		{Name: "carl", Score: 150},
		{Name: "bob", Score: 50},
		{Name: "amy", Score: 0},
	}
}

func startedMachine(t *testing.T, roundCount int) *Machine {
	t.Helper()
	m := NewMachine()
	m.LoadParticipants(testRoster(), false)

	rounds, err := PlanRounds(m.Snapshot().AllParticipants, models.RoundSettings{
		RoundCount:     roundCount,
		SelectionModel: models.ModelWeightedContinuous,
	})
	require.NoError(t, err)
	m.SetRounds(rounds)
	require.NoError(t, m.Begin())
	return m
}

func TestLoadParticipantsAssignsRanksByDescendingScore(t *testing.T) {
	m := NewMachine()
	m.LoadParticipants([]models.Participant{
		{Name: "low", Score: 10},
		{Name: "high", Score: 900},
		{Name: "", Score: 9999}, // nameless records are filtered
		{Name: "mid", Score: 400},
	}, false)

	state := m.Snapshot()
	require.Len(t, state.AllParticipants, 3)
	assert.Equal(t, "high", state.AllParticipants[0].Name)
	assert.Equal(t, 1, state.AllParticipants[0].Rank)
	assert.Equal(t, "mid", state.AllParticipants[1].Name)
	assert.Equal(t, 2, state.AllParticipants[1].Rank)
	assert.Equal(t, "low", state.AllParticipants[2].Name)
	assert.Equal(t, 3, state.AllParticipants[2].Rank)

	for _, p := range state.AllParticipants {
		assert.Equal(t, models.StatusEligible, p.Status)
	}
}

func TestBeginRequiresRounds(t *testing.T) {
	m := NewMachine()
	m.LoadParticipants(testRoster(), false)
	assert.ErrorIs(t, m.Begin(), ErrNoRounds)
}

func TestBeginTwiceFails(t *testing.T) {
	m := startedMachine(t, 2)
	assert.ErrorIs(t, m.Begin(), ErrAlreadyStarted)
}

func TestEligibleForCurrentRoundKeepsZeroEntryParticipants(t *testing.T) {
	m := startedMachine(t, 1)

	eligible := m.EligibleForCurrentRound()
	assert.Len(t, eligible, 5, "threshold 0 keeps the full field, zero-entry included")
}

func TestEligibleForCurrentRoundAppliesThreshold(t *testing.T) {
	m := NewMachine()
	m.LoadParticipants(testRoster(), false)
	m.SetRounds([]models.Round{
		{ID: 1, Name: "Round 1", EligibilityThreshold: 100},
	})
	require.NoError(t, m.Begin())

	eligible := m.EligibleForCurrentRound()
	require.Len(t, eligible, 3)
	for _, p := range eligible {
		assert.GreaterOrEqual(t, p.Score, 100)
	}
}

func TestDrawBeforeBeginFails(t *testing.T) {
	m := NewMachine()
	m.LoadParticipants(testRoster(), false)
	_, err := m.Draw(firstPick)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestDrawSetsPendingWinner(t *testing.T) {
	m := startedMachine(t, 1)

	name, err := m.Draw(firstPick)
	require.NoError(t, err)
	assert.Equal(t, "dana", name, "first pick lands on the top-ranked weighted participant")
	assert.Equal(t, models.PhasePendingConfirmation, m.Phase())

	_, err = m.Draw(firstPick)
	assert.ErrorIs(t, err, ErrPendingWinner)
}

func TestConfirmRecordsWinnerAndAdvancesRound(t *testing.T) {
	m := startedMachine(t, 2)

	name, err := m.Draw(firstPick)
	require.NoError(t, err)

	winner, err := m.Confirm("")
	require.NoError(t, err)
	assert.Equal(t, name, winner.ParticipantName)
	assert.Equal(t, 0, winner.RoundIndex)
	assert.Equal(t, "Round 1", winner.RoundName)
	assert.Equal(t, "Round 1 Prize", winner.PrizeLabel)

	state := m.Snapshot()
	assert.Equal(t, 1, state.CurrentRoundIndex)
	assert.Empty(t, state.PendingWinner)

	// The winner stays in the display list with a changed status.
	require.Len(t, state.AllParticipants, 5)
	for _, p := range state.AllParticipants {
		if p.Name == name {
			assert.Equal(t, models.StatusWinner, p.Status)
		}
	}

	for _, p := range m.EligibleForCurrentRound() {
		assert.NotEqual(t, name, p.Name)
	}
}

func TestConfirmWithoutPendingFails(t *testing.T) {
	m := startedMachine(t, 1)
	_, err := m.Confirm("")
	assert.ErrorIs(t, err, ErrNoPendingWinner)
}

func TestRejectWithdrawsAndStaysInRound(t *testing.T) {
	m := startedMachine(t, 1)

	name, err := m.Draw(firstPick)
	require.NoError(t, err)

	require.NoError(t, m.Reject())

	state := m.Snapshot()
	assert.Contains(t, state.WithdrawnNames, name)
	assert.Equal(t, 0, state.CurrentRoundIndex, "reject keeps the round open")
	assert.Empty(t, state.Winners)

	// A fresh draw runs immediately and can't select the withdrawn name.
	next, err := m.Draw(firstPick)
	require.NoError(t, err)
	assert.NotEqual(t, name, next)
}

func TestNoDuplicateConfirmedWinners(t *testing.T) {
	m := startedMachine(t, 4)

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		name, err := m.Draw(firstPick)
		require.NoError(t, err)
		assert.False(t, seen[name], "winner %s selected twice", name)
		seen[name] = true

		_, err = m.Confirm("")
		require.NoError(t, err)
	}

	state := m.Snapshot()
	names := map[string]int{}
	for _, w := range state.Winners {
		names[w.ParticipantName]++
	}
	for name, count := range names {
		assert.Equalf(t, 1, count, "winner %s appears %d times", name, count)
	}
}

func TestMachineCompletesAfterFinalRound(t *testing.T) {
	m := startedMachine(t, 1)

	_, err := m.Draw(firstPick)
	require.NoError(t, err)
	_, err = m.Confirm("")
	require.NoError(t, err)

	assert.Equal(t, models.PhaseComplete, m.Phase())
	assert.Empty(t, m.EligibleForCurrentRound())

	_, err = m.Draw(firstPick)
	assert.ErrorIs(t, err, ErrDrawComplete)
}

func TestDrawReportsEmptyPoolWhenNobodyMeetsThreshold(t *testing.T) {
	m := NewMachine()
	m.LoadParticipants([]models.Participant{
		{Name: "amy", Score: 50},
		{Name: "bob", Score: 120},
	}, false)
	m.SetRounds([]models.Round{{ID: 1, Name: "Round 1", EligibilityThreshold: 500}})
	require.NoError(t, m.Begin())

	_, err := m.Draw(firstPick)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestDrawWithEmptyRosterIsComplete(t *testing.T) {
	m := NewMachine()
	m.LoadParticipants(nil, false)
	m.SetRounds([]models.Round{{ID: 1, Name: "Round 1", EligibilityThreshold: 0}})
	require.NoError(t, m.Begin())

	// An empty eligible pool is a terminal condition, not a retriable one.
	assert.Equal(t, models.PhaseComplete, m.Phase())
	_, err := m.Draw(firstPick)
	assert.ErrorIs(t, err, ErrDrawComplete)
}

func TestResetIsIdempotent(t *testing.T) {
	m := startedMachine(t, 2)

	_, err := m.Draw(firstPick)
	require.NoError(t, err)
	_, err = m.Confirm("")
	require.NoError(t, err)

	m.Reset()
	once := m.Snapshot()

	m.Reset()
	twice := m.Snapshot()

	assert.Equal(t, once, twice)
	assert.False(t, twice.HasStarted)
	assert.Equal(t, 0, twice.CurrentRoundIndex)
	assert.Empty(t, twice.Winners)
	assert.Empty(t, twice.WithdrawnNames)
	for _, p := range twice.AllParticipants {
		assert.Equal(t, models.StatusEligible, p.Status)
	}
}

func TestLoadParticipantsPreservesProgressMidSession(t *testing.T) {
	m := startedMachine(t, 2)

	name, err := m.Draw(firstPick)
	require.NoError(t, err)
	_, err = m.Confirm("")
	require.NoError(t, err)

	// Re-import the same roster with fresher scores, keeping progress.
	refreshed := testRoster()
	for i := range refreshed {
		refreshed[i].Score += 100
	}
	m.LoadParticipants(refreshed, true)

	state := m.Snapshot()
	for _, p := range state.AllParticipants {
		if p.Name == name {
			assert.Equal(t, models.StatusWinner, p.Status, "confirmed winner survives re-import")
		}
	}
}

func TestLoadParticipantsWithoutPreserveResetsStatuses(t *testing.T) {
	m := startedMachine(t, 2)

	_, err := m.Draw(firstPick)
	require.NoError(t, err)
	_, err = m.Confirm("")
	require.NoError(t, err)

	m.LoadParticipants(testRoster(), false)

	for _, p := range m.Snapshot().AllParticipants {
		assert.Equal(t, models.StatusEligible, p.Status)
	}
}

func TestRestoreNormalizesPartialSnapshot(t *testing.T) {
	m := Restore(&models.DrawState{HasStarted: true})
	state := m.Snapshot()

	assert.NotNil(t, state.AllParticipants)
	assert.NotNil(t, state.Winners)
	assert.NotNil(t, state.WithdrawnNames)
	assert.True(t, state.HasStarted)
}

func TestRestoreNilYieldsFreshMachine(t *testing.T) {
	m := Restore(nil)
	assert.Equal(t, models.PhaseNotStarted, m.Phase())
}
