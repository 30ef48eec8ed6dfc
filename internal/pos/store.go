package pos

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tair/tiffin-pos/internal/pos/repository"
	"github.com/tair/tiffin-pos/pkg/config"
	"github.com/tair/tiffin-pos/pkg/database"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// OpenStore connects the configured record backend and wraps it with tracing
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	var store repository.Store

	switch cfg.Store.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		store = repository.NewRedisStore(client, cfg.Store.KeyPrefix, cfg.Store.MaxRetries)

	case config.BackendPostgres:
		db, err := database.NewGormConnection(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		gormStore := repository.NewGormStore(db, cfg.Store.KeyPrefix)
		if err := gormStore.AutoMigrate(); err != nil {
			_ = gormStore.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store = gormStore

	default:
		store = repository.NewMemoryStore()
	}

	logger.Logger.Info().
		Str("backend", cfg.Store.Backend).
		Str("key_prefix", cfg.Store.KeyPrefix).
		Msg("Record store initialized")

	return repository.NewTracingStore(store, cfg.Store.Backend), nil
}
