// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth

import (
	"time"

	"github.com/haneulkim/lootforge/internal/platform/sec"
)

// Account is the identity record behind every login.
//
// # Mutability
//
// The auth core never mutates an account after signup. Deletion happens only
// through external administrative action and cascades to sessions at the
// storage layer.
type Account struct {
	// ID is the immutable internal primary key.
	ID int64 `json:"id"`

	// LoginID is the unique external login identifier chosen at signup.
	LoginID string `json:"login_id"`

	// PasswordHash is the salted bcrypt hash. Never serialized.
	PasswordHash string `json:"-"`

	// DisplayName is the human-facing name.
	DisplayName string `json:"display_name"`

	CreatedAt time.Time `json:"created_at"`
}

// Identity returns the request-scoped view of the account exposed to
// downstream handlers after authentication.
func (account *Account) Identity() *sec.Identity {
	return &sec.Identity{
		AccountID:   account.ID,
		LoginID:     account.LoginID,
		DisplayName: account.DisplayName,
	}
}
