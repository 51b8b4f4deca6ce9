package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Aside implements cache-aside reads: try the provider, otherwise load once
// per key (concurrent callers share the load) and store the result.
// A nil provider disables caching but keeps de-duplication.
type Aside struct {
	provider Provider
	sf       singleflight.Group
	logger   *zap.Logger
}

func NewAside(provider Provider, logger ...*zap.Logger) *Aside {
	l := zap.L().Named("cache.aside")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cache.aside")
	}
	return &Aside{provider: provider, logger: l}
}

func (a *Aside) Provider() Provider {
	return a.provider
}

// Invalidate drops keys. Errors are logged, never returned.
func (a *Aside) Invalidate(ctx context.Context, keys ...string) {
	if a.provider == nil {
		return
	}
	if err := a.provider.Delete(ctx, keys...); err != nil {
		a.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Fetch returns the cached value for key or the result of load. Cache read
// and write failures degrade to a direct load; load errors are never cached.
func Fetch[T any](ctx context.Context, a *Aside, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if a.provider != nil {
		v, err := GetJSON[T](ctx, a.provider, key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrMiss) {
			a.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	res, err, _ := a.sf.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		if a.provider != nil {
			if err := SetJSON(ctx, a.provider, key, v, ttl); err != nil {
				a.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
