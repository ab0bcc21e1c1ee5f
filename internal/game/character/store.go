// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package character

import "context"

// Repository defines persistence operations for characters.
type Repository interface {
	// Create persists a new character and fills in its generated ID and
	// CreatedAt. Returns Conflict when the name is already taken.
	Create(ctx context.Context, character *Character) error

	// FindByID resolves a character by primary key.
	FindByID(ctx context.Context, id int64) (*Character, error)

	// ListByAccount returns all characters owned by the account, oldest first.
	ListByAccount(ctx context.Context, accountID int64) ([]Character, error)

	// Delete removes a character by primary key. Dependent inventory and
	// equipment rows cascade at the storage layer.
	Delete(ctx context.Context, id int64) error
}
