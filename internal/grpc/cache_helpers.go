package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultSetTimeout   = 5 * time.Second
)

type cacheKey string

const (
	cacheKeyCategories cacheKey = "grpc:categories"
	cacheKeyContacts   cacheKey = "grpc:contacts"
	cacheKeyAccounts   cacheKey = "grpc:accounts"
	cacheKeyDashboard  cacheKey = "grpc:dashboard_stats"
)

// cacheEntry wraps a cached value with the time it was fetched, so a hit
// can tell whether it is due for a background refresh.
type cacheEntry[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// ReadThrough holds the cache, TTL and request coalescing shared by the
// handlers' cached reads. A nil cache disables caching but keeps
// coalescing.
type ReadThrough struct {
	cache  Cacher
	group  singleflight.Group
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewReadThrough(c Cacher, ttl time.Duration, logger *zap.Logger) *ReadThrough {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadThrough{
		cache:  c,
		ttl:    ttl,
		logger: logger.Named("cache"),
		now:    time.Now,
	}
}

// Invalidate drops keys. Failures are logged; a stale entry expires with
// its TTL anyway.
func (rt *ReadThrough) Invalidate(ctx context.Context, keys ...cacheKey) {
	if rt.cache == nil || len(keys) == 0 {
		return
	}
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
	}
	if err := rt.cache.Delete(ctx, raw...); err != nil {
		rt.logger.Warn("cache invalidation failed", zap.Strings("keys", raw), zap.Error(err))
		return
	}
	rt.logger.Debug("cache invalidated", zap.Strings("keys", raw))
}

// addTTLJitter spreads expiry by up to a tenth of ttl to avoid mass expiration.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	return ttl + time.Duration(rand.Int64N(int64(ttl/10)+1))
}

func setEntry[T any](ctx context.Context, rt *ReadThrough, key string, value T) {
	ttl := addTTLJitter(rt.ttl)
	entry := cacheEntry[T]{Value: value, FetchedAt: rt.now()}
	if err := rt.cache.Set(ctx, key, entry, ttl); err != nil {
		rt.logger.Warn("failed to set cache", zap.String("key", key), zap.Error(err))
		return
	}
	rt.logger.Debug("cache populated", zap.String("key", key), zap.Duration("ttl", ttl))
}

func triggerBackgroundRefresh[T any](rt *ReadThrough, key string, fn FetchFunc[T], keep func(T) bool) {
	go func() {
		_, _, _ = rt.group.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				rt.logger.Warn("background refresh failed",
					zap.String("key", key),
					zap.Error(err))
				return nil, err
			}
			if keep != nil && !keep(value) {
				rt.logger.Debug("refreshed value not cacheable", zap.String("key", key))
				return value, nil
			}

			setCtx, cancelSet := context.WithTimeout(context.Background(), defaultSetTimeout)
			defer cancelSet()
			setEntry(setCtx, rt, key, value)
			return value, nil
		})
	}()
}

// FindAndCache implements read-through caching with singleflight and
// refresh-ahead: a hit older than half the TTL is served and refreshed in
// the background.
func FindAndCache[T any](ctx context.Context, rt *ReadThrough, key cacheKey, fn FetchFunc[T]) (T, error) {
	return FindAndCacheIf(ctx, rt, key, fn, nil)
}

// FindAndCacheIf is FindAndCache that stores a fetched value only when keep
// accepts it. A nil keep stores everything.
func FindAndCacheIf[T any](ctx context.Context, rt *ReadThrough, key cacheKey, fn FetchFunc[T], keep func(T) bool) (T, error) {
	var zero T
	k := string(key)

	if rt.cache != nil {
		var cached cacheEntry[T]
		err := rt.cache.Get(ctx, k, &cached)
		switch {
		case err == nil:
			rt.logger.Debug("cache hit", zap.String("key", k))
			if rt.now().Sub(cached.FetchedAt) > rt.ttl/2 {
				triggerBackgroundRefresh(rt, k, fn, keep)
			}
			return cached.Value, nil

		case errors.Is(err, redis.Nil):
			rt.logger.Debug("cache miss", zap.String("key", k))

		default:
			rt.logger.Warn("cache get error (treating as miss)", zap.String("key", k), zap.Error(err))
		}
	}

	v, err, shared := rt.group.Do(k, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if rt.cache != nil && (keep == nil || keep(value)) {
			go func(v T) {
				setCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
				defer cancel()
				setEntry(setCtx, rt, k, v)
			}(value)
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		rt.logger.Error("singleflight type mismatch", zap.String("key", k))
		return zero, fmt.Errorf("type mismatch for key %q", k)
	}

	if shared {
		rt.logger.Debug("singleflight shared result", zap.String("key", k))
	}

	return value, nil
}
