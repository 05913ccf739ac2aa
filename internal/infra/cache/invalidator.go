package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Ключи кэша списков. Фронтовые ручки чтения кэшируются на стороне
// reverse-proxy по этим ключам, сервис отвечает только за инвалидацию
const (
	KeyConsultationsList = "consultations:list:*"
	KeyBookingsList      = "bookings:list:*"
	KeyCandidatesList    = "candidates:list:*"
	KeySpecialistsList   = "specialists:list:*"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Invalidator сбрасывает закэшированные списки после мутаций.
// Ошибки Redis не прерывают бизнес-операцию: кэш истечёт по TTL
type Invalidator struct {
	client *redis.Client
	logger Logger
}

func NewInvalidator(client *redis.Client, logger Logger) *Invalidator {
	return &Invalidator{
		client: client,
		logger: logger,
	}
}

// Invalidate удаляет все ключи, подходящие под переданные шаблоны
func (i *Invalidator) Invalidate(ctx context.Context, patterns ...string) {
	if i.client == nil {
		return
	}

	for _, pattern := range patterns {
		if err := i.deleteByPattern(ctx, pattern); err != nil {
			i.logger.Warn("cache: invalidate %q: %v", pattern, err)
		}
	}
}

func (i *Invalidator) deleteByPattern(ctx context.Context, pattern string) error {
	iter := i.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := i.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("del: %w", err)
	}

	return nil
}
