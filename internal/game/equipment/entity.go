// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package equipment

import "time"

// Entry is one catalog item currently worn by a character. A character can
// wear at most one copy of any given item.
type Entry struct {
	ID          int64     `json:"id"`
	CharacterID int64     `json:"character_id"`
	ItemCode    int       `json:"item_code"`
	EquippedAt  time.Time `json:"equipped_at"`
}
