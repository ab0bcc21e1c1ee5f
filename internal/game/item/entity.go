// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package item

import "time"

// Stat is the free-form stat block of an item, persisted as JSONB.
// Well-known keys are "health" and "power"; designers may add others without
// a schema change.
type Stat map[string]int

// Item is a catalog entry. The catalog is global and shared by all players.
type Item struct {
	ID int64 `json:"id"`

	// ItemCode is the designer-assigned unique code used in all gameplay
	// operations. The internal ID never leaves the storage layer contracts.
	ItemCode int `json:"item_code"`

	Name string `json:"item_name"`

	// Description is optional designer flavor text.
	Description string `json:"description,omitempty"`

	Stat Stat `json:"item_stat"`

	// Price is fixed at creation. Catalog updates may change name and stats
	// but never the price.
	Price int `json:"item_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListEntry is the trimmed projection returned by catalog listings.
type ListEntry struct {
	ItemCode int    `json:"item_code"`
	Name     string `json:"item_name"`
	Price    int    `json:"item_price"`
}
