// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

/*
Package auth implements account signup and the device-scoped session lifecycle:
login, access verification with transparent renewal, and logout.

# Credential Model

A login mints three client-held values, namespaced by a freshly generated
device id:

  - a short-lived access credential, verified by signature and expiry alone
  - a long-lived refresh credential, additionally backed by a session record
  - the device id itself, which selects the credential slots on later requests

Every login invalidates all of the account's previous sessions before the new
one is persisted, so an account holds at most one live login set at a time.

# Renewal

When an access credential has expired but is otherwise well formed, the guard
renews it in place using the refresh credential from the same device slot. The
persisted session record is the authority on refresh lifetime; the expiry baked
into the refresh credential itself is ignored. Renewal never extends the
session and never rotates the refresh credential.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/ctxutil"
	"github.com/haneulkim/lootforge/internal/platform/sec"
)

// TokenProvider abstracts credential signing and verification so the service
// can be tested without real key material.
type TokenProvider interface {
	IssueAccess(accountID int64, timeToLive time.Duration) (string, error)
	IssueRefresh(accountID int64, loginID, displayName string, timeToLive time.Duration) (string, error)
	Decode(tokenString string) (*sec.SessionClaims, error)
}

// Service orchestrates the account and session lifecycle.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
}

// NewService creates the auth service.
func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
	}
}

// SignupInput carries validated signup data into the service layer.
type SignupInput struct {
	LoginID     string
	Password    string
	DisplayName string
}

// Signup creates a new account with a freshly hashed password.
//
// Signup does not log the account in; the client follows up with Login.
func (service *Service) Signup(ctx context.Context, input SignupInput) (*Account, error) {
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_password_failed: %w", err)
	}

	account := &Account{
		LoginID:      input.LoginID,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
	}

	// The unique index on login_id is the real duplicate gate; the store maps
	// a violation to a Conflict AppError.
	if err := service.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// LoginInput carries validated login data plus request metadata recorded on
// the session for auditing.
type LoginInput struct {
	LoginID          string
	Password         string
	OriginAddr       string
	ClientDescriptor string
}

// LoginSession is the full credential set minted by a successful login.
type LoginSession struct {
	Account          *Account
	DeviceID         string
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Login verifies credentials and mints a new device-scoped login set.
//
// # Single Active Login Set
//
// All previous sessions of the account are invalidated before the new one is
// created. A refresh credential from an earlier login is dead the moment a
// later login succeeds, even though its signature still verifies.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	// 1. Resolve the account. An unknown login id and a wrong password must
	// be indistinguishable to the caller.
	account, err := service.accounts.FindByLoginID(ctx, input.LoginID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return nil, apperr.InvalidCredentials()
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// 2. Verify the password against the stored hash.
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	// 3. Revoke every earlier login set before issuing the new one.
	if err := service.sessions.InvalidateAll(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("auth_service_invalidate_sessions_failed: %w", err)
	}

	// 4. Mint the device identity and both credentials.
	deviceID, err := sec.NewDeviceID()
	if err != nil {
		return nil, fmt.Errorf("auth_service_device_id_failed: %w", err)
	}

	accessToken, err := service.tokens.IssueAccess(account.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_access_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefresh(account.ID, account.LoginID, account.DisplayName, constants.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_refresh_failed: %w", err)
	}

	// 5. Persist the session record backing the refresh credential.
	session := &Session{
		Token:            refreshToken,
		AccountID:        account.ID,
		DeviceID:         deviceID,
		OriginAddr:       input.OriginAddr,
		ClientDescriptor: input.ClientDescriptor,
		ExpiresAt:        time.Now().Add(constants.RefreshTokenTTL),
	}
	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth_service_create_session_failed: %w", err)
	}

	return &LoginSession{
		Account:          account,
		DeviceID:         deviceID,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: session.ExpiresAt,
	}, nil
}

// Authenticate resolves the caller's identity from the credentials bound to a
// device slot. It implements the access-guard contract used by the HTTP
// middleware.
//
// The second return value is a replacement access credential. It is non-empty
// only when the presented one had expired and was renewed in place; the
// transport layer re-binds it to the same device slot so the client never
// observes the expiry.
func (service *Service) Authenticate(ctx context.Context, deviceID, accessToken, refreshToken string) (*sec.Identity, string, error) {
	// 1. Both a device identity and an access credential are required.
	if deviceID == "" || accessToken == "" {
		return nil, "", apperr.Unauthorized("Login required")
	}

	// 2. Reject wrong-slot credentials before signature work.
	if sec.PeekType(accessToken) != sec.TokenTypeAccess {
		return nil, "", apperr.Unauthorized("Wrong token type")
	}

	claims, err := service.tokens.Decode(accessToken)
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		// 3. Expired but authentic: attempt transparent renewal on the same
		// device slot.
		renewed, renewErr := service.Renew(ctx, deviceID, refreshToken)
		if renewErr != nil {
			var rejection *RenewalError
			if errors.As(renewErr, &rejection) {
				ctxutil.GetLogger(ctx).Debug("session_renewal_rejected",
					slog.String("reason", string(rejection.Reason)),
					slog.String("device_id", deviceID),
				)
				return nil, "", apperr.Unauthorized("Session expired. Please log in again")
			}
			return nil, "", fmt.Errorf("auth_service_renewal_failed: %w", renewErr)
		}
		return renewed.Account.Identity(), renewed.AccessToken, nil

	case err != nil:
		return nil, "", apperr.Unauthorized("Malformed token")
	}

	// 4. Valid credential: confirm the account still exists.
	account, err := service.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return nil, "", apperr.Unauthorized("Account not found")
		}
		return nil, "", fmt.Errorf("auth_service_account_lookup_failed: %w", err)
	}

	return account.Identity(), "", nil
}

// RenewedSession is the result of a successful refresh.
type RenewedSession struct {
	Account     *Account
	AccessToken string
}

// Renew exchanges a refresh credential for a fresh access credential.
//
// # Lifetime Authority
//
// The persisted session's ExpiresAt decides whether renewal is allowed. The
// expiry claim inside the refresh credential is deliberately ignored, so an
// operator-extended session row keeps working and a shortened one stops
// immediately. An expired session row is evicted on discovery.
//
// The refresh credential is never rotated; its lifetime is absolute from
// login.
func (service *Service) Renew(ctx context.Context, deviceID, refreshToken string) (*RenewedSession, error) {
	if deviceID == "" || refreshToken == "" {
		return nil, &RenewalError{Reason: RenewalNoToken}
	}

	if sec.PeekType(refreshToken) != sec.TokenTypeRefresh {
		return nil, &RenewalError{Reason: RenewalWrongType}
	}

	// Verify authenticity. Codec-level expiry is tolerated here because the
	// session record below is the authority on lifetime.
	claims, err := service.tokens.Decode(refreshToken)
	if err != nil && !errors.Is(err, sec.ErrTokenExpired) {
		return nil, &RenewalError{Reason: RenewalInvalid, Cause: err}
	}

	session, err := service.sessions.FindByTokenAndAccount(ctx, refreshToken, claims.AccountID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return nil, &RenewalError{Reason: RenewalRevoked}
		}
		return nil, fmt.Errorf("auth_service_session_lookup_failed: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		// Evict the dead record so later attempts fail as revoked.
		if err := service.sessions.Delete(ctx, session.ID); err != nil {
			ctxutil.GetLogger(ctx).Error("session_eviction_failed",
				slog.Int64("session_id", session.ID),
				slog.Any("error", err),
			)
		}
		return nil, &RenewalError{Reason: RenewalExpired}
	}

	account, err := service.accounts.FindByID(ctx, session.AccountID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return nil, &RenewalError{Reason: RenewalRevoked, Cause: err}
		}
		return nil, fmt.Errorf("auth_service_account_lookup_failed: %w", err)
	}

	accessToken, err := service.tokens.IssueAccess(account.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_access_failed: %w", err)
	}

	return &RenewedSession{Account: account, AccessToken: accessToken}, nil
}

// Logout invalidates the session backing the presented refresh credential.
//
// Logout is idempotent: a missing, foreign, or already revoked credential is
// treated as success, since the desired end state (no such session) already
// holds.
func (service *Service) Logout(ctx context.Context, accountID int64, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	session, err := service.sessions.FindByTokenAndAccount(ctx, refreshToken, accountID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return nil
		}
		return fmt.Errorf("auth_service_logout_lookup_failed: %w", err)
	}

	if err := service.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_delete_failed: %w", err)
	}

	return nil
}
