package service

import (
	"prize-draw-backend/internal/features/draw/models"
)

// RandSource yields a float in [0, 1). Randomness is injected so selection is
// deterministic under test; callers pass rand.Float64 in production.
type RandSource func() float64

// SelectWinner performs one weighted draw over the eligible list and returns
// the winning name.
//
// The draw is a cumulative-weight search: pick an integer t in [1, total]
// and walk the list accumulating entry counts until the running total reaches
// t. Outcome-equivalent to materializing one ticket per entry, shuffling and
// picking one, without the O(total) memory. Any shuffle-before-reveal
// animation belongs to the presentation layer and must not touch this math.
//
// When the pool holds zero total entries the draw falls back to a uniform
// pick, so an all-zero-score round still produces a winner.
func SelectWinner(eligible []models.Participant, rng RandSource) (string, error) {
	if len(eligible) == 0 {
		return "", ErrEmptyPool
	}

	total := models.TotalEntries(eligible)
	if total == 0 {
		return eligible[int(rng()*float64(len(eligible)))].Name, nil
	}

	t := int(rng()*float64(total)) + 1

	cumulative := 0
	for _, p := range eligible {
		cumulative += p.EntryCount()
		if cumulative >= t {
			return p.Name, nil
		}
	}

	// Unreachable when rng stays in [0,1); guard against a misbehaving source.
	return eligible[len(eligible)-1].Name, nil
}
