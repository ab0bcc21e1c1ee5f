// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulkim/lootforge/internal/platform/sec"
)

const testIssuer = "lootforge.dev"

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret-0123456789", testIssuer)
	require.NoError(t, err)
	return service
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer)
	assert.Error(t, err)
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueAccess(42, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, sec.TokenTypeAccess, claims.Type())
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestIssueRefresh_CarriesIdentity(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueRefresh(7, "u1", "Player One", time.Hour)
	require.NoError(t, err)

	claims, err := service.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, sec.TokenTypeRefresh, claims.Type())
	assert.Equal(t, int64(7), claims.AccountID)
	assert.Equal(t, "u1", claims.LoginID)
	assert.Equal(t, "Player One", claims.DisplayName)
}

func TestDecode_WrongSecret(t *testing.T) {
	service := newTokenService(t)
	other, err := sec.NewTokenService("a-completely-different-secret", testIssuer)
	require.NoError(t, err)

	token, err := service.IssueAccess(1, time.Minute)
	require.NoError(t, err)

	claims, err := other.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

func TestDecode_Garbage(t *testing.T) {
	service := newTokenService(t)

	claims, err := service.Decode("not.a.token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

func TestDecode_ExpiredStillReturnsClaims(t *testing.T) {
	service := newTokenService(t)

	// A negative lifetime mints an already-expired credential.
	token, err := service.IssueAccess(99, -time.Minute)
	require.NoError(t, err)

	claims, err := service.Decode(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
	require.NotNil(t, claims, "expired credentials must still expose their subject")
	assert.Equal(t, int64(99), claims.AccountID)
}

func TestDecode_ExpiredWithWrongSecretIsInvalid(t *testing.T) {
	service := newTokenService(t)
	other, err := sec.NewTokenService("a-completely-different-secret", testIssuer)
	require.NoError(t, err)

	token, err := service.IssueAccess(99, -time.Minute)
	require.NoError(t, err)

	// Expiry must never take precedence over a bad signature.
	claims, err := other.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

func TestPeekType(t *testing.T) {
	service := newTokenService(t)

	accessToken, err := service.IssueAccess(1, time.Minute)
	require.NoError(t, err)
	refreshToken, err := service.IssueRefresh(1, "u1", "Player", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, sec.TokenTypeAccess, sec.PeekType(accessToken))
	assert.Equal(t, sec.TokenTypeRefresh, sec.PeekType(refreshToken))
	assert.Equal(t, sec.TokenTypeUnknown, sec.PeekType("garbage"))
	assert.Equal(t, sec.TokenTypeUnknown, sec.PeekType(""))
}

func TestPeekType_SurvivesExpiry(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueRefresh(1, "u1", "Player", -time.Hour)
	require.NoError(t, err)

	assert.Equal(t, sec.TokenTypeRefresh, sec.PeekType(token))
}
