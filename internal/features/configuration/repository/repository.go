package repository

import (
	"context"
	"errors"

	"prize-draw-backend/internal/features/configuration/models"
)

var ErrConfigurationNotFound = errors.New("configuration not found")

// ConfigurationRepository stores named configurations keyed by generated id.
type ConfigurationRepository interface {
	Create(ctx context.Context, cfg *models.NamedConfiguration) error
	GetByID(ctx context.Context, id string) (*models.NamedConfiguration, error)
	GetAll(ctx context.Context) ([]*models.NamedConfiguration, error)
	Update(ctx context.Context, cfg *models.NamedConfiguration) error
	Delete(ctx context.Context, id string) error
}
