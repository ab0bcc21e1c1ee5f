// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package inventory

import "context"

// Repository defines persistence operations for character inventories.
type Repository interface {
	// Add inserts a stack or increments an existing one by quantity, and
	// returns the resulting entry.
	Add(ctx context.Context, characterID int64, itemCode, quantity int) (*Entry, error)

	// FindEntry resolves the stack of a specific item held by a character.
	FindEntry(ctx context.Context, characterID int64, itemCode int) (*Entry, error)

	// List returns all stacks held by the character ordered by item code.
	List(ctx context.Context, characterID int64) ([]Entry, error)

	// Remove deletes the stack of a specific item. Removing an absent stack
	// returns NotFound.
	Remove(ctx context.Context, characterID int64, itemCode int) error
}
