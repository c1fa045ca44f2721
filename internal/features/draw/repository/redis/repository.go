package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"prize-draw-backend/internal/features/draw/models"
	"prize-draw-backend/internal/features/draw/repository"
)

const keyDrawState = "draw:session:state"

type redisStore struct {
	client redis.Cmdable
}

// NewSnapshotStore returns a SnapshotStore backed by a single Redis key
// holding the JSON-encoded session state.
func NewSnapshotStore(client redis.Cmdable) repository.SnapshotStore {
	return &redisStore{client: client}
}

func (r *redisStore) Save(ctx context.Context, state *models.DrawState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal draw state: %w", err)
	}
	if err := r.client.Set(ctx, keyDrawState, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store draw state: %w", err)
	}
	return nil
}

func (r *redisStore) Load(ctx context.Context) (*models.DrawState, error) {
	data, err := r.client.Get(ctx, keyDrawState).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	var state models.DrawState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draw state: %w", err)
	}
	state.Normalize()
	return &state, nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, keyDrawState).Err()
}
