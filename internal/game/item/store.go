// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package item

import (
	"context"

	"github.com/haneulkim/lootforge/pkg/pagination"
)

// Repository defines persistence operations for the item catalog.
type Repository interface {
	// Create persists a new catalog entry and fills in its generated ID and
	// timestamps. Returns Conflict when the item code is already taken.
	Create(ctx context.Context, item *Item) error

	// FindByCode resolves a catalog entry by its designer-assigned code.
	FindByCode(ctx context.Context, itemCode int) (*Item, error)

	// Update rewrites the mutable fields (name, stat) of the entry identified
	// by item.ItemCode. Price is not touched.
	Update(ctx context.Context, item *Item) error

	// List returns one page of the catalog ordered by item code, plus the
	// total entry count.
	List(ctx context.Context, params pagination.Params) ([]ListEntry, int64, error)
}
