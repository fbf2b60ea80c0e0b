package config

import (
	"context"
	"fmt"

	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/memory"
	"github.com/idilsaglam/tada/internal/store/redisstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

// OpenStorage builds the adapter selected by cfg.Storage.
func OpenStorage(ctx context.Context, cfg *Config) (store.Storage, error) {
	switch cfg.Storage {
	case StorageMemory:
		return memory.New(), nil
	case StorageJSON:
		return jsonstore.New(cfg.Path), nil
	case StorageSQLite:
		s, err := sqlitestore.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case StorageRedis:
		s, err := redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("open storage: unknown backend %q", cfg.Storage)
}
