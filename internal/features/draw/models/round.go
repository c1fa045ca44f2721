package models

// SelectionModel governs whether the field narrows across rounds.
type SelectionModel string

const (
	// ModelUniformElimination raises thresholds across rounds so the field
	// narrows; a participant drops out of eligibility once below the round's
	// threshold.
	ModelUniformElimination SelectionModel = "uniform_elimination"

	// ModelWeightedContinuous keeps every non-winning, non-withdrawn
	// participant eligible in every round; only accumulated tickets change
	// relative standing.
	ModelWeightedContinuous SelectionModel = "weighted_continuous"
)

func (m SelectionModel) Valid() bool {
	return m == ModelUniformElimination || m == ModelWeightedContinuous
}

// Round is one stage of the drawing with its own eligibility threshold.
// Rounds are immutable once generated; regeneration replaces the whole list.
type Round struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	EligibilityThreshold int    `json:"eligibility_threshold"`
	Description          string `json:"description"`
}

// RoundSettings is the configuration a round plan is generated from.
// WinnersPerRound is fixed at 1.
type RoundSettings struct {
	RoundCount      int            `json:"round_count" binding:"required,min=1"`
	SelectionModel  SelectionModel `json:"selection_model" binding:"required"`
	WinnersPerRound int            `json:"winners_per_round,omitempty"`
}
