package kv

import (
	"context"

	"sapa/config"
	"sapa/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisStore persists snapshots in redis. Intended for shared or demo
// deployments where a local directory is not available.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis using the configured address.
func NewRedisStore(cfg *config.RedisConfig) repository.KeyValueStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisStore{client: client}
}

// Get returns the snapshot stored under key.
func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.Wrapf(repository.ErrStorageUnavailable, "read %q: %v", key, err)
	}

	return data, nil
}

// Set replaces the snapshot stored under key. Snapshots never expire.
func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.Wrapf(repository.ErrStorageUnavailable, "write %q: %v", key, err)
	}

	return nil
}

// Delete removes the snapshot stored under key.
func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(repository.ErrStorageUnavailable, "delete %q: %v", key, err)
	}

	return nil
}
