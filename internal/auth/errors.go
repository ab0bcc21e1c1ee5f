// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth

import "fmt"

// RenewalReason classifies why a refresh attempt was rejected. The reasons
// are logged for diagnostics but never exposed to clients verbatim; clients
// only ever see a generic "log in again" failure.
type RenewalReason string

const (
	// RenewalNoToken means no refresh credential was presented.
	RenewalNoToken RenewalReason = "no_refresh_token"
	// RenewalWrongType means a credential was presented in the refresh slot
	// but does not self-identify as a refresh token.
	RenewalWrongType RenewalReason = "wrong_token_type"
	// RenewalInvalid means signature verification or decoding failed.
	RenewalInvalid RenewalReason = "invalid_token"
	// RenewalRevoked means the credential verified but no matching session
	// record exists. It was invalidated by a later login or a logout.
	RenewalRevoked RenewalReason = "revoked"
	// RenewalExpired means the session record exists but its stored expiry
	// has passed. The record is evicted as a side effect.
	RenewalExpired RenewalReason = "expired"
)

// RenewalError reports a rejected refresh attempt with a machine-readable
// reason.
type RenewalError struct {
	Reason RenewalReason
	Cause  error
}

// Error implements the error interface.
func (e *RenewalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session renewal rejected (%s): %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("session renewal rejected (%s)", e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *RenewalError) Unwrap() error {
	return e.Cause
}
