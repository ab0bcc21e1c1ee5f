// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package inventory

import "time"

// Entry is one stack of a catalog item held by a character.
type Entry struct {
	ID          int64     `json:"id"`
	CharacterID int64     `json:"character_id"`
	ItemCode    int       `json:"item_code"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
