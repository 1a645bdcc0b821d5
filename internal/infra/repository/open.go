package repository

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	repo "storefront/internal/repository"
)

// 設定に合わせて保存領域を開く
func OpenKeyValueStore(ctx context.Context, cfg config.Config) (repo.KeyValueStore, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemoryKeyValueStore(), nil
	case config.StorageFile:
		return NewFileKeyValueStore(cfg.StoragePath)
	case config.StoragePostgres:
		gormDB, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s := NewGormKeyValueStore(gormDB, cfg.StoragePrefix)
		if err := s.Migrate(); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case config.StorageRedis:
		return NewRedisKeyValueStore(ctx, cfg.RedisURL, cfg.StoragePrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
