// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package item_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulkim/lootforge/internal/game/item"
	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/pkg/pagination"
)

// countingRepo is an in-memory catalog that counts reads hitting it, so the
// tests can tell a cache hit from a fall-through.
type countingRepo struct {
	mu        sync.Mutex
	items     map[int]*item.Item
	findCalls int
	listCalls int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{items: make(map[int]*item.Item)}
}

func (r *countingRepo) Create(_ context.Context, entry *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[entry.ItemCode]; exists {
		return apperr.Conflict("Item already exists")
	}
	entry.ID = int64(len(r.items) + 1)
	copied := *entry
	r.items[entry.ItemCode] = &copied
	return nil
}

func (r *countingRepo) FindByCode(_ context.Context, itemCode int) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	entry, ok := r.items[itemCode]
	if !ok {
		return nil, apperr.NotFound("Item")
	}
	copied := *entry
	return &copied, nil
}

func (r *countingRepo) Update(_ context.Context, entry *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[entry.ItemCode]
	if !ok {
		return apperr.NotFound("Item")
	}
	existing.Name = entry.Name
	existing.Description = entry.Description
	existing.Stat = entry.Stat
	entry.ID = existing.ID
	entry.Price = existing.Price
	return nil
}

func (r *countingRepo) List(_ context.Context, _ pagination.Params) ([]item.ListEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	entries := make([]item.ListEntry, 0, len(r.items))
	for _, entry := range r.items {
		entries = append(entries, item.ListEntry{ItemCode: entry.ItemCode, Name: entry.Name, Price: entry.Price})
	}
	return entries, int64(len(entries)), nil
}

func newCachedRepo(t *testing.T) (*item.CachedRepository, *countingRepo) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	underlying := newCountingRepo()
	return item.NewCachedRepository(underlying, client, slog.Default()), underlying
}

func TestCachedRepository_FindByCodeServedFromCache(t *testing.T) {
	cached, underlying := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, &item.Item{ItemCode: 101, Name: "Iron Sword", Price: 500}))

	first, err := cached.FindByCode(ctx, 101)
	require.NoError(t, err)
	second, err := cached.FindByCode(ctx, 101)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, underlying.findCalls, "second read must come from cache")
}

func TestCachedRepository_UpdateInvalidates(t *testing.T) {
	cached, underlying := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, &item.Item{ItemCode: 101, Name: "Iron Sword", Price: 500}))
	_, err := cached.FindByCode(ctx, 101)
	require.NoError(t, err)

	require.NoError(t, cached.Update(ctx, &item.Item{ItemCode: 101, Name: "Steel Sword"}))

	refreshed, err := cached.FindByCode(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Steel Sword", refreshed.Name)
	assert.Equal(t, 2, underlying.findCalls, "update must evict the cached entry")
}

func TestCachedRepository_ListPagesInvalidatedByWrite(t *testing.T) {
	cached, underlying := newCachedRepo(t)
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 20}

	require.NoError(t, cached.Create(ctx, &item.Item{ItemCode: 101, Name: "Iron Sword", Price: 500}))

	_, total, err := cached.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = cached.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 1, underlying.listCalls, "repeat listing must come from cache")

	// A new catalog entry must show up on the next listing.
	require.NoError(t, cached.Create(ctx, &item.Item{ItemCode: 102, Name: "Oak Shield", Price: 300}))

	entries, total, err := cached.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, underlying.listCalls)
}

func TestCachedRepository_NotFoundPassesThrough(t *testing.T) {
	cached, _ := newCachedRepo(t)

	_, err := cached.FindByCode(context.Background(), 999)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
