package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"prize-draw-backend/internal/common/logger"
	"prize-draw-backend/internal/features/draw/models"
	"prize-draw-backend/internal/features/draw/repository"
)

// DrawService exposes the engine to delivery layers and shadows every state
// transition into the snapshot store. Persistence is fire-and-forget and
// always runs after the in-memory mutation, so memory is never behind disk.
type DrawService struct {
	mu    sync.Mutex
	m     *Machine
	store repository.SnapshotStore
	rng   RandSource
}

func NewDrawService(store repository.SnapshotStore) *DrawService {
	return &DrawService{
		m:     NewMachine(),
		store: store,
		rng:   rand.Float64,
	}
}

// WithRand overrides the random source. Tests inject a seeded source here.
func (s *DrawService) WithRand(rng RandSource) *DrawService {
	s.rng = rng
	return s
}

// RestoreSession loads the persisted snapshot, if any, into the machine.
func (s *DrawService) RestoreSession(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.m = Restore(state)
	s.mu.Unlock()

	logger.Info().
		Int("participants", len(state.AllParticipants)).
		Int("winners", len(state.Winners)).
		Bool("has_started", state.HasStarted).
		Msg("Draw session restored from snapshot")
	return nil
}

func (s *DrawService) State() *models.DrawState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Snapshot()
}

func (s *DrawService) Phase() models.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Phase()
}

// LoadParticipants installs a new roster and, unless configured rounds
// already exist, leaves planning to a later Plan call.
func (s *DrawService) LoadParticipants(ctx context.Context, list []models.Participant, preserveProgress bool) *models.DrawState {
	s.mu.Lock()
	s.m.LoadParticipants(list, preserveProgress)
	snapshot := s.m.Snapshot()
	s.mu.Unlock()

	logger.Info().
		Int("participants", len(snapshot.AllParticipants)).
		Bool("preserve_progress", preserveProgress).
		Msg("Roster loaded")

	s.persist(ctx, snapshot)
	return snapshot
}

// Plan generates the round list from the current roster and installs it.
func (s *DrawService) Plan(ctx context.Context, settings models.RoundSettings) ([]models.Round, error) {
	s.mu.Lock()
	rounds, err := PlanRounds(s.m.Snapshot().AllParticipants, settings)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.m.SetRounds(rounds)
	snapshot := s.m.Snapshot()
	s.mu.Unlock()

	logger.Info().
		Int("rounds", len(rounds)).
		Str("model", string(settings.SelectionModel)).
		Msg("Round plan generated")

	s.persist(ctx, snapshot)
	return rounds, nil
}

func (s *DrawService) Begin(ctx context.Context) error {
	s.mu.Lock()
	err := s.m.Begin()
	snapshot := s.m.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logger.Info().Msg("Draw session started")
	s.persist(ctx, snapshot)
	return nil
}

func (s *DrawService) EligibleForCurrentRound() []models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.EligibleForCurrentRound()
}

func (s *DrawService) CurrentRound() (models.Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.CurrentRound()
}

func (s *DrawService) Draw(ctx context.Context) (string, error) {
	s.mu.Lock()
	name, err := s.m.Draw(s.rng)
	snapshot := s.m.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	logger.Info().Str("pending_winner", name).Msg("Winner drawn, awaiting confirmation")
	s.persist(ctx, snapshot)
	return name, nil
}

func (s *DrawService) Confirm(ctx context.Context, prizeLabel string) (models.Winner, error) {
	s.mu.Lock()
	winner, err := s.m.Confirm(prizeLabel)
	snapshot := s.m.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return models.Winner{}, err
	}

	logger.Info().
		Str("winner", winner.ParticipantName).
		Str("round", winner.RoundName).
		Msg("Winner confirmed")

	s.persist(ctx, snapshot)
	return winner, nil
}

func (s *DrawService) Reject(ctx context.Context) error {
	s.mu.Lock()
	err := s.m.Reject()
	snapshot := s.m.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logger.Info().Msg("Pending winner rejected and withdrawn")
	s.persist(ctx, snapshot)
	return nil
}

// Reset clears the session and erases the stored snapshot.
func (s *DrawService) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.m.Reset()
	s.mu.Unlock()

	logger.Info().Msg("Draw session reset")
	return s.store.Clear(ctx)
}

func (s *DrawService) persist(ctx context.Context, snapshot *models.DrawState) {
	if err := s.store.Save(ctx, snapshot); err != nil {
		logger.Error().Err(err).Msg("Failed to save draw snapshot")
	}
}
