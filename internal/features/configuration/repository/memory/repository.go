package memory

import (
	"context"
	"sync"

	"prize-draw-backend/internal/features/configuration/models"
	"prize-draw-backend/internal/features/configuration/repository"
)

type memoryRepository struct {
	mu      sync.RWMutex
	configs map[string]*models.NamedConfiguration
}

// NewConfigurationRepository returns a map-backed repository, used when
// Redis is disabled and as a test double.
func NewConfigurationRepository() repository.ConfigurationRepository {
	return &memoryRepository{configs: make(map[string]*models.NamedConfiguration)}
}

func (m *memoryRepository) Create(_ context.Context, cfg *models.NamedConfiguration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *cfg
	m.configs[cfg.ID] = &clone
	return nil
}

func (m *memoryRepository) GetByID(_ context.Context, id string) (*models.NamedConfiguration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.configs[id]
	if !ok {
		return nil, repository.ErrConfigurationNotFound
	}
	clone := *cfg
	return &clone, nil
}

func (m *memoryRepository) GetAll(_ context.Context) ([]*models.NamedConfiguration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.NamedConfiguration, 0, len(m.configs))
	for _, cfg := range m.configs {
		clone := *cfg
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memoryRepository) Update(_ context.Context, cfg *models.NamedConfiguration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[cfg.ID]; !ok {
		return repository.ErrConfigurationNotFound
	}
	clone := *cfg
	m.configs[cfg.ID] = &clone
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.configs, id)
	return nil
}
