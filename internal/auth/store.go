// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth

import "context"

// AccountRepository defines persistence operations for accounts.
//
// Implementations translate storage-level failures into the application
// error taxonomy: a missing row surfaces as a NotFound AppError and a
// login-id collision as a Conflict AppError.
type AccountRepository interface {
	// Create persists a new account and fills in its generated ID and
	// CreatedAt. Returns Conflict when the login id is already taken.
	Create(ctx context.Context, account *Account) error

	// FindByLoginID resolves an account by its unique login identifier.
	FindByLoginID(ctx context.Context, loginID string) (*Account, error)

	// FindByID resolves an account by primary key.
	FindByID(ctx context.Context, id int64) (*Account, error)
}

// SessionRepository defines persistence operations for refresh sessions.
type SessionRepository interface {
	// Create persists a new session and fills in its generated ID and
	// CreatedAt.
	Create(ctx context.Context, session *Session) error

	// FindByTokenAndAccount resolves the session matching both the exact
	// refresh credential and the owning account. Lookups by token alone are
	// deliberately not offered; a credential is only meaningful together
	// with the account it claims to belong to.
	FindByTokenAndAccount(ctx context.Context, token string, accountID int64) (*Session, error)

	// InvalidateAll removes every session belonging to the account. Removing
	// zero rows is not an error.
	InvalidateAll(ctx context.Context, accountID int64) error

	// Delete removes a single session by primary key. Deleting an already
	// absent session is not an error.
	Delete(ctx context.Context, sessionID int64) error
}
