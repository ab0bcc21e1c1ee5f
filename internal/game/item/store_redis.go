// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package item

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/pkg/pagination"
)

// cacheTTL bounds staleness when an invalidation is lost (e.g. Redis restart
// between the DB write and the cache write).
const cacheTTL = 5 * time.Minute

// CachedRepository decorates a Repository with a Redis read-through cache.
//
// # Consistency
//
// Reads are served from cache when possible. Writes go to the underlying
// repository first, then invalidate: the per-code entry is deleted and a
// generation counter embedded in every list key is bumped, which orphans all
// cached pages at once.
//
// Cache failures never fail the request; the caller silently falls through to
// the underlying repository.
type CachedRepository struct {
	next   Repository
	cache  *redis.Client
	logger *slog.Logger
}

// NewCachedRepository wraps next with a Redis cache.
func NewCachedRepository(next Repository, cache *redis.Client, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, cache: cache, logger: logger}
}

// Create implements Repository.
func (r *CachedRepository) Create(ctx context.Context, item *Item) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.bumpGeneration(ctx)
	return nil
}

// FindByCode implements Repository.
func (r *CachedRepository) FindByCode(ctx context.Context, itemCode int) (*Item, error) {
	key := codeKey(itemCode)

	if raw, err := r.cache.Get(ctx, key).Bytes(); err == nil {
		var cached Item
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry: drop it and fall through.
		r.cache.Del(ctx, key)
	}

	item, err := r.next.FindByCode(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, item)
	return item, nil
}

// Update implements Repository.
func (r *CachedRepository) Update(ctx context.Context, item *Item) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}

	if err := r.cache.Del(ctx, codeKey(item.ItemCode)).Err(); err != nil {
		r.logger.Warn("item_cache_invalidate_failed",
			slog.Int("item_code", item.ItemCode),
			slog.Any("error", err),
		)
	}
	r.bumpGeneration(ctx)

	return nil
}

// cachedPage is the serialized form of one cached catalog page.
type cachedPage struct {
	Entries []ListEntry `json:"entries"`
	Total   int64       `json:"total"`
}

// List implements Repository.
func (r *CachedRepository) List(ctx context.Context, params pagination.Params) ([]ListEntry, int64, error) {
	key := r.listKey(ctx, params)

	if raw, err := r.cache.Get(ctx, key).Bytes(); err == nil {
		var page cachedPage
		if err := json.Unmarshal(raw, &page); err == nil {
			return page.Entries, page.Total, nil
		}
		r.cache.Del(ctx, key)
	}

	entries, total, err := r.next.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	r.set(ctx, key, cachedPage{Entries: entries, Total: total})
	return entries, total, nil
}

// set serializes and stores a cache entry. Failures are logged, never returned.
func (r *CachedRepository) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		r.logger.Warn("item_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// bumpGeneration orphans all cached list pages in one cheap operation.
func (r *CachedRepository) bumpGeneration(ctx context.Context) {
	if err := r.cache.Incr(ctx, generationKey()).Err(); err != nil {
		r.logger.Warn("item_cache_generation_bump_failed", slog.Any("error", err))
	}
}

// listKey builds a page key bound to the current cache generation.
func (r *CachedRepository) listKey(ctx context.Context, params pagination.Params) string {
	generation, err := r.cache.Get(ctx, generationKey()).Int64()
	if err != nil {
		generation = 0
	}
	return fmt.Sprintf("%slist:g%d:p%d:l%d", constants.RedisPrefixItemCatalog, generation, params.Page, params.Limit)
}

func codeKey(itemCode int) string {
	return constants.RedisPrefixItemCatalog + "code:" + strconv.Itoa(itemCode)
}

func generationKey() string {
	return constants.RedisPrefixItemCatalog + "generation"
}
