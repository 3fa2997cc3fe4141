package kv

import (
	"log/slog"

	"sapa/config"
	"sapa/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the storage provider, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New selects the configured KeyValueStore backend.
func New(params Params) (repository.KeyValueStore, error) {
	storage := params.Config.Storage

	switch storage.Provider {
	case "file", "":
		bucket, err := OpenFileBucket(storage.Path)
		if err != nil {
			return nil, errors.Wrap(err, "open file storage")
		}
		params.Logger.Info("Using file storage", slog.String("path", storage.Path))

		return NewBlobStore(bucket), nil

	case "memory":
		params.Logger.Warn("Using in-memory storage, data will not survive restarts")

		return NewBlobStore(OpenMemoryBucket()), nil

	case "redis":
		if storage.Redis == nil {
			return nil, errors.New("redis storage selected but storage.redis is not configured")
		}
		params.Logger.Info("Using redis storage", slog.String("addr", storage.Redis.Addr))

		return NewRedisStore(storage.Redis), nil

	default:
		return nil, errors.Errorf("unknown storage provider: %s", storage.Provider)
	}
}
