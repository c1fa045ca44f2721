package service

import (
	"fmt"
	"sort"

	"prize-draw-backend/internal/features/draw/models"
)

// defaultLadderCeiling caps the fallback threshold ladder produced when no
// participant data is loaded yet, so a round preview is always renderable.
const defaultLadderCeiling = 1000

// PlanRounds turns participant data and round settings into an ordered round
// list. The list is immutable once generated; changing team data or the round
// count regenerates the whole list.
func PlanRounds(participants []models.Participant, settings models.RoundSettings) ([]models.Round, error) {
	if settings.RoundCount < 1 {
		return nil, fmt.Errorf("%w: round count must be at least 1, got %d", ErrInvalidConfiguration, settings.RoundCount)
	}
	if !settings.SelectionModel.Valid() {
		return nil, fmt.Errorf("%w: unknown selection model %q", ErrInvalidConfiguration, settings.SelectionModel)
	}

	switch settings.SelectionModel {
	case models.ModelWeightedContinuous:
		return planContinuous(participants, settings.RoundCount), nil
	default:
		return planElimination(participants, settings.RoundCount), nil
	}
}

// planContinuous keeps every threshold at zero: no one is eliminated by
// score, only by winning or withdrawing.
func planContinuous(participants []models.Participant, count int) []models.Round {
	rounds := make([]models.Round, 0, count)
	for i := 0; i < count; i++ {
		rounds = append(rounds, models.Round{
			ID:                   i + 1,
			Name:                 roundName(i, count),
			EligibilityThreshold: 0,
			Description:          fmt.Sprintf("All %d remaining participants stay in the pool", len(participants)),
		})
	}
	return rounds
}

// planElimination buckets the ascending-sorted scores into count equal
// slices; each round's threshold is the score at the start of its bucket.
// Round one always has threshold 0 so the initial field is fully eligible,
// and thresholds are monotonically non-decreasing by construction.
func planElimination(participants []models.Participant, count int) []models.Round {
	if len(participants) == 0 {
		return defaultLadder(count)
	}

	scores := make([]int, len(participants))
	for i, p := range participants {
		scores[i] = p.Score
	}
	sort.Ints(scores)

	rounds := make([]models.Round, 0, count)
	for i := 0; i < count; i++ {
		threshold := 0
		if i > 0 {
			idx := i * len(scores) / count
			if idx >= len(scores) {
				idx = len(scores) - 1
			}
			threshold = scores[idx]
		}

		surviving := 0
		for _, s := range scores {
			if s >= threshold {
				surviving++
			}
		}

		rounds = append(rounds, models.Round{
			ID:                   i + 1,
			Name:                 roundName(i, count),
			EligibilityThreshold: threshold,
			Description:          fmt.Sprintf("Requires %d points, %d participants qualify", threshold, surviving),
		})
	}
	return rounds
}

// defaultLadder spaces thresholds evenly up to a fixed ceiling. Only used
// before any participants are loaded.
func defaultLadder(count int) []models.Round {
	rounds := make([]models.Round, 0, count)
	for i := 0; i < count; i++ {
		threshold := i * defaultLadderCeiling / count
		rounds = append(rounds, models.Round{
			ID:                   i + 1,
			Name:                 roundName(i, count),
			EligibilityThreshold: threshold,
			Description:          fmt.Sprintf("Requires %d points", threshold),
		})
	}
	return rounds
}

func roundName(i, count int) string {
	if i == count-1 {
		return "Final Round"
	}
	return fmt.Sprintf("Round %d", i+1)
}
