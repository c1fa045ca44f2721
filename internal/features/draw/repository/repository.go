package repository

import (
	"context"
	"errors"

	"prize-draw-backend/internal/features/draw/models"
)

var ErrSnapshotNotFound = errors.New("draw snapshot not found")

// SnapshotStore persists the full session state as one document. Load
// returns ErrSnapshotNotFound when nothing has been saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, state *models.DrawState) error
	Load(ctx context.Context) (*models.DrawState, error)
	Clear(ctx context.Context) error
}
