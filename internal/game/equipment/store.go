// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package equipment

import "context"

// Repository defines persistence operations for equipped items.
type Repository interface {
	// Equip inserts an equipped entry. The unique (character_id, item_code)
	// constraint maps a double equip to Conflict.
	Equip(ctx context.Context, characterID int64, itemCode int) (*Entry, error)

	// List returns everything the character has equipped, oldest first.
	List(ctx context.Context, characterID int64) ([]Entry, error)

	// Unequip removes an equipped entry. Removing an absent entry returns
	// NotFound.
	Unequip(ctx context.Context, characterID int64, itemCode int) error
}
