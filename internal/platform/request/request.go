// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/internal/platform/ctxutil"
	"github.com/haneulkim/lootforge/internal/platform/sec"
	"github.com/haneulkim/lootforge/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as a positive int64.
//
// Returns a validation error if the parameter is missing or not a number.
func IntParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return value, nil
}

// Identity extracts the authenticated identity from the request context.
//
// Returns nil if the request is not authenticated.
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetAccount(request.Context())
}

// RequiredIdentity ensures the request is authenticated and returns the identity.
//
// Returns apperr.Unauthorized if the request is anonymous.
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetAccount(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}

// RequiredAccountID returns the account id of the currently logged-in user.
//
// Returns apperr.Unauthorized if not authenticated.
func RequiredAccountID(request *http.Request) (int64, error) {
	identity, err := RequiredIdentity(request)
	if err != nil {
		return 0, err
	}
	return identity.AccountID, nil
}
