// Package ratelimit считает запросы по ключу (адрес клиента) в скользящем окне.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Decision - результат проверки квоты.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	Reset     time.Time
}

// Limiter проверяет квоту и учитывает запрос одним вызовом.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// QuotaLimiter - Limiter поверх ulule/limiter.
type QuotaLimiter struct {
	instance *limiter.Limiter
}

// New создаёт лимитер с квотой в формате ulule ("5-H", "10-M").
// Если client не nil, счётчики хранятся в Redis и общие для всех экземпляров.
func New(quota, prefix string, client *redis.Client) (*QuotaLimiter, error) {
	rate, err := limiter.NewRateFromFormatted(quota)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", quota, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   "ratelimit:" + prefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	return &QuotaLimiter{instance: limiter.New(store, rate)}, nil
}

// Allow учитывает запрос и сообщает, укладывается ли он в квоту.
func (l *QuotaLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	lctx, err := l.instance.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:   !lctx.Reached,
		Limit:     lctx.Limit,
		Remaining: lctx.Remaining,
		Reset:     time.Unix(lctx.Reset, 0),
	}, nil
}

// Unlimited пропускает всё. Используется в тестах и при отключённых квотах.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true}, nil
}
