package models

// Winner is one confirmed draw result. The list is append-only and ordered
// by round.
type Winner struct {
	ParticipantName string `json:"participant_name"`
	RoundIndex      int    `json:"round_index"`
	RoundName       string `json:"round_name"`
	PrizeLabel      string `json:"prize_label"`
}

// Phase is the machine's position in the draw lifecycle.
type Phase string

const (
	PhaseNotStarted          Phase = "not_started"
	PhaseRoundEligible       Phase = "round_eligible"
	PhasePendingConfirmation Phase = "pending_confirmation"
	PhaseComplete            Phase = "complete"
)

// DrawState is the aggregate session state. It is owned exclusively by the
// state machine and persisted as a single JSON document.
type DrawState struct {
	AllParticipants   []Participant `json:"all_participants"`
	EligiblePool      []Participant `json:"eligible_pool"`
	Rounds            []Round       `json:"rounds"`
	CurrentRoundIndex int           `json:"current_round_index"`
	Winners           []Winner      `json:"winners"`
	WithdrawnNames    []string      `json:"withdrawn_names"`
	PendingWinner     string        `json:"pending_winner,omitempty"`
	IsDrawInProgress  bool          `json:"is_draw_in_progress"`
	HasStarted        bool          `json:"has_started"`
}

// Normalize default-fills fields that may be absent in a snapshot written by
// an older schema version. Absent arrays are empty, not corruption.
func (s *DrawState) Normalize() {
	if s.AllParticipants == nil {
		s.AllParticipants = []Participant{}
	}
	if s.EligiblePool == nil {
		s.EligiblePool = []Participant{}
	}
	if s.Rounds == nil {
		s.Rounds = []Round{}
	}
	if s.Winners == nil {
		s.Winners = []Winner{}
	}
	if s.WithdrawnNames == nil {
		s.WithdrawnNames = []string{}
	}
	for i := range s.AllParticipants {
		if s.AllParticipants[i].Status == "" {
			s.AllParticipants[i].Status = StatusEligible
		}
	}
}

// HasMeaningfulProgress reports whether the state is worth persisting:
// a started draw, or at least one loaded participant.
func (s *DrawState) HasMeaningfulProgress() bool {
	return s.HasStarted || len(s.AllParticipants) > 0
}

// Clone returns a deep copy so callers can hand out read-only snapshots
// without exposing the machine's internals.
func (s *DrawState) Clone() *DrawState {
	out := &DrawState{
		AllParticipants:   append([]Participant(nil), s.AllParticipants...),
		EligiblePool:      append([]Participant(nil), s.EligiblePool...),
		Rounds:            append([]Round(nil), s.Rounds...),
		CurrentRoundIndex: s.CurrentRoundIndex,
		Winners:           append([]Winner(nil), s.Winners...),
		WithdrawnNames:    append([]string(nil), s.WithdrawnNames...),
		PendingWinner:     s.PendingWinner,
		IsDrawInProgress:  s.IsDrawInProgress,
		HasStarted:        s.HasStarted,
	}
	out.Normalize()
	return out
}
