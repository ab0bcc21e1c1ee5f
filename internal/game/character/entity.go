// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package character

import "time"

// Starting attribute values for every new character.
const (
	StartingHealth = 500
	StartingPower  = 100
	StartingMoney  = 10000
)

// Character is a playable avatar owned by exactly one account.
type Character struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"-"`
	Name      string    `json:"name"`
	Health    int       `json:"health"`
	Power     int       `json:"power"`
	Money     int       `json:"money"`
	CreatedAt time.Time `json:"created_at"`
}

// View is the read model returned by lookups. Money is shown only to the
// owning account; for everyone else the field is omitted entirely rather than
// zeroed, so a broke character cannot be confused with a foreign one.
type View struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Health int    `json:"health"`
	Power  int    `json:"power"`
	Money  *int   `json:"money,omitempty"`
}

// ViewFor projects the character for the given viewer account.
func (c *Character) ViewFor(viewerAccountID int64) *View {
	view := &View{
		ID:     c.ID,
		Name:   c.Name,
		Health: c.Health,
		Power:  c.Power,
	}
	if viewerAccountID == c.AccountID {
		money := c.Money
		view.Money = &money
	}
	return view
}
