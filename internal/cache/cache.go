// Package cache содержит кеш чтения для неизменяемых записей: redis,
// если он настроен, иначе кеш в памяти процесса.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/config"
)

// Store — общий интерфейс кешей. Значения сериализуются в JSON.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

// New выбирает реализацию кеша по конфигу: redis при заданном адресе, иначе память.
func New(ctx context.Context, cfg config.RedisConnection, defaultTTL time.Duration, log *slog.Logger) (Store, error) {
	if cfg.AddressRedis == "" {
		log.Info("redis address is empty, using in-memory cache")
		return NewMemory(defaultTTL), nil
	}
	return InitServer(ctx, cfg)
}
