// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth

import "time"

// Session is the persisted record of one issued refresh credential, i.e. one
// logged-in device for one account.
//
// # Invariant
//
// In normal operation at most one valid Session exists per (account, device)
// pair. The store does not enforce a uniqueness constraint; duplicate
// suppression is achieved by invalidating all of an account's prior sessions
// on every new login.
type Session struct {
	ID int64 `json:"id"`

	// Token is the signed refresh credential stored verbatim. Together with
	// AccountID it acts as the lookup key.
	Token string `json:"-"`

	AccountID int64 `json:"account_id"`

	// DeviceID namespaces the client-side credential slots for this login.
	DeviceID string `json:"device_id"`

	// OriginAddr is the client address observed at login time.
	OriginAddr string `json:"origin_addr"`

	// ClientDescriptor is the client's self-reported identification (user agent).
	ClientDescriptor string `json:"client_descriptor"`

	// ExpiresAt is the absolute expiry. It is authoritative over the expiry
	// embedded in the refresh credential and is never extended by renewal.
	ExpiresAt time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
