package service

import (
	"fmt"
	"sort"

	"prize-draw-backend/internal/features/draw/models"
)

// maxDrawRetries bounds the defensive re-draw performed when a selected name
// turns out to already hold a confirmed win.
const maxDrawRetries = 5

// Machine owns the session's DrawState. Every mutation goes through one of
// its operations; callers only ever see cloned snapshots. The machine is not
// goroutine safe, there is exactly one writer per session.
type Machine struct {
	state *models.DrawState
}

func NewMachine() *Machine {
	s := &models.DrawState{}
	s.Normalize()
	return &Machine{state: s}
}

// Restore builds a machine around a persisted snapshot, default-filling any
// fields absent from older schema versions.
func Restore(state *models.DrawState) *Machine {
	if state == nil {
		return NewMachine()
	}
	s := state.Clone()
	return &Machine{state: s}
}

// Snapshot returns a deep copy of the current state.
func (m *Machine) Snapshot() *models.DrawState {
	return m.state.Clone()
}

// Phase derives the machine's lifecycle position from state.
func (m *Machine) Phase() models.Phase {
	switch {
	case !m.state.HasStarted:
		return models.PhaseNotStarted
	case m.isComplete():
		return models.PhaseComplete
	case m.state.PendingWinner != "":
		return models.PhasePendingConfirmation
	default:
		return models.PhaseRoundEligible
	}
}

// LoadParticipants replaces the roster. Records without a name are dropped.
// Ranks are assigned by descending score and every status is reset to
// eligible, unless preserveProgress is set while a draw is underway, in
// which case statuses already held by matching names survive the re-import.
func (m *Machine) LoadParticipants(list []models.Participant, preserveProgress bool) {
	previous := make(map[string]models.ParticipantStatus, len(m.state.AllParticipants))
	keepStatuses := preserveProgress && m.state.HasStarted
	if keepStatuses {
		for _, p := range m.state.AllParticipants {
			previous[p.Name] = p.Status
		}
	}

	loaded := make([]models.Participant, 0, len(list))
	for _, p := range list {
		if p.Name == "" {
			continue
		}
		p.Status = models.StatusEligible
		if keepStatuses {
			if status, ok := previous[p.Name]; ok {
				p.Status = status
			}
		}
		loaded = append(loaded, p)
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].Score > loaded[j].Score
	})
	for i := range loaded {
		loaded[i].Rank = i + 1
	}

	m.state.AllParticipants = loaded
	m.syncPools()
}

// SetRounds installs a freshly planned round list, replacing any previous
// one wholesale.
func (m *Machine) SetRounds(rounds []models.Round) {
	m.state.Rounds = append([]models.Round{}, rounds...)
}

// Begin starts the drawing session.
func (m *Machine) Begin() error {
	if m.state.HasStarted {
		return ErrAlreadyStarted
	}
	if len(m.state.Rounds) == 0 {
		return ErrNoRounds
	}

	m.state.HasStarted = true
	m.state.CurrentRoundIndex = 0
	m.state.Winners = []models.Winner{}
	m.state.PendingWinner = ""
	m.syncPools()
	return nil
}

// CurrentRound returns the active round descriptor, or false once the round
// list is exhausted.
func (m *Machine) CurrentRound() (models.Round, bool) {
	if m.state.CurrentRoundIndex < 0 || m.state.CurrentRoundIndex >= len(m.state.Rounds) {
		return models.Round{}, false
	}
	return m.state.Rounds[m.state.CurrentRoundIndex], true
}

// EligibleForCurrentRound is a pure query: participants whose status is
// eligible, whose score meets the active round's threshold, and who are
// neither confirmed winners nor withdrawn. Zero-entry participants stay in
// the list for display; the weighted draw gives them no chance unless the
// whole pool holds zero entries.
func (m *Machine) EligibleForCurrentRound() []models.Participant {
	round, ok := m.CurrentRound()
	if !ok {
		return []models.Participant{}
	}

	winners := make(map[string]bool, len(m.state.Winners))
	for _, w := range m.state.Winners {
		winners[w.ParticipantName] = true
	}
	withdrawn := make(map[string]bool, len(m.state.WithdrawnNames))
	for _, name := range m.state.WithdrawnNames {
		withdrawn[name] = true
	}

	eligible := make([]models.Participant, 0, len(m.state.EligiblePool))
	for _, p := range m.state.EligiblePool {
		if p.Status != models.StatusEligible {
			continue
		}
		if p.Score < round.EligibilityThreshold {
			continue
		}
		if winners[p.Name] || withdrawn[p.Name] {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}

// Draw selects a pending winner for the current round. The selection pool is
// computed just before consumption, but a stale pool is still defended
// against: a name that already holds a confirmed win triggers a bounded
// re-draw with that name excluded.
func (m *Machine) Draw(rng RandSource) (string, error) {
	if !m.state.HasStarted {
		return "", ErrNotStarted
	}
	if m.isComplete() {
		return "", ErrDrawComplete
	}
	if m.state.PendingWinner != "" {
		return "", ErrPendingWinner
	}

	eligible := m.EligibleForCurrentRound()
	if len(eligible) == 0 {
		return "", ErrEmptyPool
	}

	winners := make(map[string]bool, len(m.state.Winners))
	for _, w := range m.state.Winners {
		winners[w.ParticipantName] = true
	}

	pool := eligible
	for attempt := 0; attempt < maxDrawRetries; attempt++ {
		name, err := SelectWinner(pool, rng)
		if err != nil {
			return "", err
		}
		if !winners[name] {
			m.state.PendingWinner = name
			return name, nil
		}

		filtered := pool[:0:0]
		for _, p := range pool {
			if p.Name != name {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			return "", ErrNoEligibleParticipants
		}
		pool = filtered
	}
	return "", ErrNoEligibleParticipants
}

// Confirm records the pending winner for the current round and advances to
// the next one. The participant keeps its place in the display list; only
// its status changes, which excludes it from future eligibility filtering.
func (m *Machine) Confirm(prizeLabel string) (models.Winner, error) {
	if m.state.PendingWinner == "" {
		return models.Winner{}, ErrNoPendingWinner
	}

	round, ok := m.CurrentRound()
	if !ok {
		return models.Winner{}, ErrDrawComplete
	}
	if prizeLabel == "" {
		prizeLabel = fmt.Sprintf("%s Prize", round.Name)
	}

	winner := models.Winner{
		ParticipantName: m.state.PendingWinner,
		RoundIndex:      m.state.CurrentRoundIndex,
		RoundName:       round.Name,
		PrizeLabel:      prizeLabel,
	}
	m.state.Winners = append(m.state.Winners, winner)
	m.setStatus(winner.ParticipantName, models.StatusWinner)
	m.state.CurrentRoundIndex++
	m.state.PendingWinner = ""
	m.syncPools()
	return winner, nil
}

// Reject withdraws the pending winner permanently for the session. The round
// does not advance, so a fresh Draw can run immediately.
func (m *Machine) Reject() error {
	if m.state.PendingWinner == "" {
		return ErrNoPendingWinner
	}

	name := m.state.PendingWinner
	found := false
	for _, existing := range m.state.WithdrawnNames {
		if existing == name {
			found = true
			break
		}
	}
	if !found {
		m.state.WithdrawnNames = append(m.state.WithdrawnNames, name)
	}
	m.setStatus(name, models.StatusWithdrawn)
	m.state.PendingWinner = ""
	m.syncPools()
	return nil
}

// Reset returns the machine to a pristine not-started state with every
// participant eligible again. Idempotent.
func (m *Machine) Reset() {
	for i := range m.state.AllParticipants {
		m.state.AllParticipants[i].Status = models.StatusEligible
	}
	m.state.Winners = []models.Winner{}
	m.state.WithdrawnNames = []string{}
	m.state.PendingWinner = ""
	m.state.HasStarted = false
	m.state.CurrentRoundIndex = 0
	m.syncPools()
}

func (m *Machine) setStatus(name string, status models.ParticipantStatus) {
	for i := range m.state.AllParticipants {
		if m.state.AllParticipants[i].Name == name {
			m.state.AllParticipants[i].Status = status
			break
		}
	}
}

func (m *Machine) isComplete() bool {
	if !m.state.HasStarted {
		return false
	}
	if m.state.CurrentRoundIndex >= len(m.state.Rounds) {
		return true
	}
	return len(m.state.EligiblePool) == 0
}

// syncPools recomputes the derived eligible pool and progress flag after a
// mutation, so persisted snapshots stay internally consistent.
func (m *Machine) syncPools() {
	pool := make([]models.Participant, 0, len(m.state.AllParticipants))
	for _, p := range m.state.AllParticipants {
		if p.Status == models.StatusEligible {
			pool = append(pool, p)
		}
	}
	m.state.EligiblePool = pool
	m.state.IsDrawInProgress = m.state.HasStarted && !m.isComplete()
}
