// Package backend opens the key-value store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quiz-portal/internal/config"
	"quiz-portal/pkg/cache"
	"quiz-portal/pkg/database"
	"quiz-portal/pkg/storage"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Backend hands out namespaced stores over a single connection.
type Backend struct {
	driver string
	redis  *cache.RedisCache
	db     *gorm.DB

	mu     sync.Mutex
	memory map[string]*storage.MemoryStore
}

func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	b := &Backend{driver: cfg.Store.Driver}

	switch cfg.Store.Driver {
	case DriverMemory:
		b.memory = make(map[string]*storage.MemoryStore)
	case DriverRedis:
		b.redis = cache.NewRedisCache(cfg.Redis.Addr, cfg.Store.Namespace)
		if err := b.redis.Ping(ctx); err != nil {
			b.redis.Close()
			return nil, err
		}
	case DriverPostgres:
		db, err := database.NewPostgresDB(cfg.DB.Postgres())
		if err != nil {
			return nil, err
		}
		b.db = db
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	log.Info("store opened", zap.String("driver", b.driver))
	return b, nil
}

func (b *Backend) Driver() string {
	return b.driver
}

// Store returns the store for namespace. Memory stores are created once per namespace
// and live as long as the process.
func (b *Backend) Store(namespace string) storage.Store {
	switch b.driver {
	case DriverRedis:
		return b.redis.WithNamespace(namespace)
	case DriverPostgres:
		return database.NewKVStore(b.db, namespace)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.memory[namespace]
	if !ok {
		s = storage.NewMemoryStore()
		b.memory[namespace] = s
	}
	return s
}

func (b *Backend) Close() error {
	switch b.driver {
	case DriverRedis:
		return b.redis.Close()
	case DriverPostgres:
		sqlDB, err := b.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
