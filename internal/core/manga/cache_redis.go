// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package manga

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/phamduc/yonde/internal/platform/constants"
	"github.com/phamduc/yonde/internal/platform/ctxutil"
)

// Cache defines the read-cache contract for manga detail documents.
//
// # Why an interface?
//
// The service depends on this contract instead of the Redis client so
// unit tests can inject an in-memory fake. Implementations must treat
// the cache as an accelerator only: failures degrade to database reads
// and are never surfaced to callers.
type Cache interface {
	// GetDetail returns the cached detail for a slug, or found=false on miss.
	GetDetail(context context.Context, slug string) (detail *Detail, found bool)

	// SetDetail stores the detail document under its slug with the cache TTL.
	SetDetail(context context.Context, slug string, detail *Detail)

	// Invalidate drops the cached documents for the given slugs.
	Invalidate(context context.Context, slugs ...string)
}

// # Redis Implementation

// RedisCache implements [Cache] using Redis with JSON-serialized documents.
//
// Keys follow the "catalog:manga:<slug>" layout and expire after
// [constants.MangaCacheTTL] as a backstop to eager invalidation.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed detail cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetDetail returns the cached detail for a slug, or found=false on any
// miss, decode failure, or Redis outage.
func (cache *RedisCache) GetDetail(context context.Context, slug string) (*Detail, bool) {
	payload, err := cache.client.Get(context, constants.RedisPrefixManga+slug).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(context).Warn("manga_cache_get_failed",
				slog.String("slug", slug),
				slog.Any("error", err),
			)
		}
		return nil, false
	}

	var detail Detail
	if err := json.Unmarshal(payload, &detail); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		ctxutil.GetLogger(context).Warn("manga_cache_decode_failed",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		return nil, false
	}

	return &detail, true
}

// SetDetail stores the detail document under its slug. Failures are
// logged and ignored: the cache never blocks a successful read.
func (cache *RedisCache) SetDetail(context context.Context, slug string, detail *Detail) {
	payload, err := json.Marshal(detail)
	if err != nil {
		ctxutil.GetLogger(context).Warn("manga_cache_encode_failed",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		return
	}

	if err := cache.client.Set(context, constants.RedisPrefixManga+slug, payload, constants.MangaCacheTTL).Err(); err != nil {
		ctxutil.GetLogger(context).Warn("manga_cache_set_failed",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
	}
}

// Invalidate drops the cached documents for the given slugs, best-effort.
func (cache *RedisCache) Invalidate(context context.Context, slugs ...string) {
	if len(slugs) == 0 {
		return
	}

	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		keys = append(keys, constants.RedisPrefixManga+slug)
	}

	if len(keys) == 0 {
		return
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		ctxutil.GetLogger(context).Warn("manga_cache_invalidate_failed",
			slog.Any("error", err),
		)
	}
}
