package memory

import (
	"context"
	"sync"

	"prize-draw-backend/internal/features/draw/models"
	"prize-draw-backend/internal/features/draw/repository"
)

// Store is an in-memory SnapshotStore, used when Redis is disabled and as a
// test double.
type Store struct {
	mu    sync.Mutex
	state *models.DrawState
	saves int
}

func NewSnapshotStore() *Store {
	return &Store{}
}

func (m *Store) Save(_ context.Context, state *models.DrawState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	m.saves++
	return nil
}

func (m *Store) Load(_ context.Context) (*models.DrawState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	return m.state.Clone(), nil
}

func (m *Store) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}

// SaveCount reports how many writes reached the store. Tests use it to
// observe write coalescing.
func (m *Store) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
