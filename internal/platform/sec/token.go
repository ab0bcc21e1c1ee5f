// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Package sec provides cryptographic primitives and session credential management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, credential signing)
// from the domain logic. It acts as an Infrastructure service injected into
// the Application layer via constructor dependencies.
package sec

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType discriminates the slot a credential is allowed to be presented in.
//
// An access-tagged credential must never be accepted where a refresh credential
// is required, and vice versa. The tag is checked before any claim is trusted.
type TokenType string

const (
	// TokenTypeAccess marks a short-lived credential proven by signature+expiry alone.
	TokenTypeAccess TokenType = "access"

	// TokenTypeRefresh marks a long-lived credential that must also match a
	// persisted session record before it is honored.
	TokenTypeRefresh TokenType = "refresh"

	// TokenTypeUnknown is returned for unparseable or untagged credentials.
	TokenTypeUnknown TokenType = ""
)

// Codec-level sentinel errors. Callers branch on these with [errors.Is]:
// only ErrTokenExpired may trigger the transparent renewal path, every other
// failure is terminal.
var (
	// ErrTokenInvalid covers structural and signature failures. Deliberately
	// generic so clients learn nothing about what exactly was wrong.
	ErrTokenInvalid = errors.New("sec: invalid credential")

	// ErrTokenExpired means the credential was well-formed and correctly
	// signed, but its embedded expiry has passed.
	ErrTokenExpired = errors.New("sec: credential expired")
)

// SessionClaims is the payload embedded inside a signed session credential.
//
// # Why custom claims?
//
// Access tokens carry only the account id, so the access guard can resolve the
// caller without a session-store read. Refresh tokens additionally embed
// redundant identity fields (login id, display name) mirroring the persisted
// session, which keeps renewal self-describing.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	AccountID   int64  `json:"aid"`
	TokenType   string `json:"typ"`
	LoginID     string `json:"lid,omitempty"`
	DisplayName string `json:"dnm,omitempty"`
}

// Type returns the typed tag of the claims.
func (claims *SessionClaims) Type() TokenType {
	switch TokenType(claims.TokenType) {
	case TokenTypeAccess:
		return TokenTypeAccess
	case TokenTypeRefresh:
		return TokenTypeRefresh
	default:
		return TokenTypeUnknown
	}
}

// TokenService handles generation and verification of session credentials
// using HS256 over a process-wide signing secret.
//
// # Concurrency
//
// The secret is read-only after construction; TokenService is safe for
// concurrent use without locking.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService.
//
// An empty secret is a configuration error and must abort startup; falling
// back to an unsigned or default-signed credential is never acceptable.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// IssueAccess creates a signed access credential for the given account.
//
// Access credentials carry the minimum claim set; they are never persisted
// server-side, validity is proven solely by signature and expiry.
func (service *TokenService) IssueAccess(accountID int64, timeToLive time.Duration) (string, error) {
	return service.sign(SessionClaims{
		AccountID: accountID,
		TokenType: string(TokenTypeAccess),
	}, accountID, timeToLive)
}

// IssueRefresh creates a signed refresh credential for the given account,
// embedding the redundant identity claims supplied by the caller.
func (service *TokenService) IssueRefresh(accountID int64, loginID, displayName string, timeToLive time.Duration) (string, error) {
	return service.sign(SessionClaims{
		AccountID:   accountID,
		TokenType:   string(TokenTypeRefresh),
		LoginID:     loginID,
		DisplayName: displayName,
	}, accountID, timeToLive)
}

// sign stamps the registered claims and produces the compact signed form.
func (service *TokenService) sign(claims SessionClaims, accountID int64, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(accountID, 10),
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", errors.Join(ErrTokenInvalid, err)
	}

	return signedToken, nil
}

// Decode verifies the signature and structure of a credential.
//
// # Error Contract
//
//   - Any structural or signature failure returns (nil, [ErrTokenInvalid]).
//   - A correctly signed but expired credential returns the decoded claims
//     together with [ErrTokenExpired], so callers that treat a persisted
//     record as the authoritative lifetime can still read the subject.
//   - On success the verified claims are returned with a nil error.
func (service *TokenService) Decode(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return service.secret, nil
	})

	if err != nil {
		// Expiry is the only failure the caller may distinguish: the signature
		// checked out, so the decoded subject is trustworthy even though the
		// credential itself is no longer.
		if errors.Is(err, jwt.ErrTokenExpired) && token != nil {
			if claims, ok := token.Claims.(*SessionClaims); ok {
				return claims, ErrTokenExpired
			}
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// PeekType reads the type tag of a credential WITHOUT verifying its signature.
//
// # Safety
//
// This exists only for fast rejection of wrong-slot tokens. It must never be
// used as a substitute for [TokenService.Decode] before trusting any claim.
func PeekType(tokenString string) TokenType {
	claims := &SessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return TokenTypeUnknown
	}
	return claims.Type()
}

// Identity is the authenticated principal exposed to downstream handlers
// after the access guard accepts a request.
type Identity struct {
	AccountID   int64  `json:"id"`
	LoginID     string `json:"login_id"`
	DisplayName string `json:"display_name"`
}
