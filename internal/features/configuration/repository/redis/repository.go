package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"prize-draw-backend/internal/features/configuration/models"
	"prize-draw-backend/internal/features/configuration/repository"
)

const (
	keyPrefixConfiguration = "config:"
	keyAllConfigurations   = "configs:all"
)

type redisRepository struct {
	client redis.Cmdable
}

func NewConfigurationRepository(client redis.Cmdable) repository.ConfigurationRepository {
	return &redisRepository{client: client}
}

func makeConfigurationKey(id string) string {
	return keyPrefixConfiguration + id
}

func (r *redisRepository) Create(ctx context.Context, cfg *models.NamedConfiguration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeConfigurationKey(cfg.ID), data, 0)
	pipe.SAdd(ctx, keyAllConfigurations, cfg.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.NamedConfiguration, error) {
	data, err := r.client.Get(ctx, makeConfigurationKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrConfigurationNotFound
	}
	if err != nil {
		return nil, err
	}

	var cfg models.NamedConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

func (r *redisRepository) GetAll(ctx context.Context) ([]*models.NamedConfiguration, error) {
	ids, err := r.client.SMembers(ctx, keyAllConfigurations).Result()
	if err != nil {
		return nil, err
	}

	configs := make([]*models.NamedConfiguration, 0, len(ids))
	for _, id := range ids {
		cfg, err := r.GetByID(ctx, id)
		if err == repository.ErrConfigurationNotFound {
			// Stale index entry, drop it.
			r.client.SRem(ctx, keyAllConfigurations, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (r *redisRepository) Update(ctx context.Context, cfg *models.NamedConfiguration) error {
	exists, err := r.client.Exists(ctx, makeConfigurationKey(cfg.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return repository.ErrConfigurationNotFound
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return r.client.Set(ctx, makeConfigurationKey(cfg.ID), data, 0).Err()
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeConfigurationKey(id))
	pipe.SRem(ctx, keyAllConfigurations, id)

	_, err := pipe.Exec(ctx)
	return err
}
