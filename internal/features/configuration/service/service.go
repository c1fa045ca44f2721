package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"prize-draw-backend/internal/common/logger"
	"prize-draw-backend/internal/features/configuration/models"
	"prize-draw-backend/internal/features/configuration/repository"
	drawservice "prize-draw-backend/internal/features/draw/service"
)

// RoundCountPresets are the round counts offered by the configuration UI.
var RoundCountPresets = []int{1, 3, 5, 10}

// ConfigurationService manages named drawing configurations. Round lists are
// generated at save time and stored alongside the settings, so restoring a
// configuration never re-runs the planner.
type ConfigurationService struct {
	repo repository.ConfigurationRepository
}

func NewConfigurationService(repo repository.ConfigurationRepository) *ConfigurationService {
	return &ConfigurationService{repo: repo}
}

func (s *ConfigurationService) Create(ctx context.Context, input models.ConfigurationCreate) (*models.NamedConfiguration, error) {
	rounds, err := drawservice.PlanRounds(input.Participants, input.RoundSettings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cfg := &models.NamedConfiguration{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Participants:  input.Participants,
		RoundSettings: input.RoundSettings,
		Rounds:        rounds,
		CreatedAt:     now,
		LastModified:  now,
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}

	logger.Info().
		Str("configuration_id", cfg.ID).
		Str("name", cfg.Name).
		Int("rounds", len(rounds)).
		Msg("Configuration created")
	return cfg, nil
}

func (s *ConfigurationService) Get(ctx context.Context, id string) (*models.NamedConfiguration, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all configurations, newest first.
func (s *ConfigurationService) List(ctx context.Context) ([]*models.NamedConfiguration, error) {
	configs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].CreatedAt.After(configs[j].CreatedAt)
	})
	return configs, nil
}

// Update replaces the editable fields and regenerates the round list from
// the new settings.
func (s *ConfigurationService) Update(ctx context.Context, id string, input models.ConfigurationUpdate) (*models.NamedConfiguration, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rounds, err := drawservice.PlanRounds(input.Participants, input.RoundSettings)
	if err != nil {
		return nil, err
	}

	cfg.Name = input.Name
	cfg.Participants = input.Participants
	cfg.RoundSettings = input.RoundSettings
	cfg.Rounds = rounds
	cfg.LastModified = time.Now().UTC()

	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}

	logger.Info().Str("configuration_id", cfg.ID).Msg("Configuration updated")
	return cfg, nil
}

func (s *ConfigurationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("configuration_id", id).Msg("Configuration deleted")
	return nil
}
