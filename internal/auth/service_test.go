// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulkim/lootforge/internal/auth"
	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/sec"
)

// ── In-memory repositories ──────────────────────────────────────────────────

type memAccounts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*auth.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{nextID: 1, rows: make(map[int64]*auth.Account)}
}

func (m *memAccounts) Create(_ context.Context, account *auth.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.LoginID == account.LoginID {
			return apperr.Conflict("account already exists")
		}
	}
	account.ID = m.nextID
	account.CreatedAt = time.Now()
	m.nextID++
	copied := *account
	m.rows[account.ID] = &copied
	return nil
}

func (m *memAccounts) FindByLoginID(_ context.Context, loginID string) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.LoginID == loginID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("account")
}

func (m *memAccounts) FindByID(_ context.Context, id int64) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("account")
	}
	copied := *row
	return &copied, nil
}

func (m *memAccounts) delete(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
}

type memSessions struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*auth.Session
}

func newMemSessions() *memSessions {
	return &memSessions{nextID: 1, rows: make(map[int64]*auth.Session)}
}

func (m *memSessions) Create(_ context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.ID = m.nextID
	session.CreatedAt = time.Now()
	m.nextID++
	copied := *session
	m.rows[session.ID] = &copied
	return nil
}

func (m *memSessions) FindByTokenAndAccount(_ context.Context, token string, accountID int64) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Token == token && row.AccountID == accountID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("session")
}

func (m *memSessions) InvalidateAll(_ context.Context, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, row := range m.rows {
		if row.AccountID == accountID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *memSessions) Delete(_ context.Context, sessionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, sessionID)
	return nil
}

func (m *memSessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memSessions) expire(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Token == token {
			row.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}
}

// ── Fixture ─────────────────────────────────────────────────────────────────

type fixture struct {
	service  *auth.Service
	accounts *memAccounts
	sessions *memSessions
	tokens   *sec.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := sec.NewTokenService("test-secret-0123456789", "lootforge.dev")
	require.NoError(t, err)

	accounts := newMemAccounts()
	sessions := newMemSessions()
	return &fixture{
		service:  auth.NewService(accounts, sessions, tokens),
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
	}
}

func (f *fixture) signup(t *testing.T, loginID, password string) *auth.Account {
	t.Helper()
	account, err := f.service.Signup(context.Background(), auth.SignupInput{
		LoginID:     loginID,
		Password:    password,
		DisplayName: "Player " + loginID,
	})
	require.NoError(t, err)
	return account
}

func (f *fixture) login(t *testing.T, loginID, password string) *auth.LoginSession {
	t.Helper()
	loginSession, err := f.service.Login(context.Background(), auth.LoginInput{
		LoginID:          loginID,
		Password:         password,
		OriginAddr:       "203.0.113.7:51234",
		ClientDescriptor: "test-agent",
	})
	require.NoError(t, err)
	return loginSession
}

// ── Signup / Login ──────────────────────────────────────────────────────────

func TestSignup_DuplicateLoginID(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")

	_, err := f.service.Signup(context.Background(), auth.SignupInput{
		LoginID:     "u1",
		Password:    "pw123456",
		DisplayName: "Second",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestSignup_DoesNotStorePlaintext(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")

	assert.NotEqual(t, "pw123456", account.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("pw123456", account.PasswordHash))
}

func TestLogin_MintsFullCredentialSet(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")

	loginSession := f.login(t, "u1", "pw123456")

	assert.Len(t, loginSession.DeviceID, 32)
	assert.Equal(t, sec.TokenTypeAccess, sec.PeekType(loginSession.AccessToken))
	assert.Equal(t, sec.TokenTypeRefresh, sec.PeekType(loginSession.RefreshToken))
	assert.WithinDuration(t, time.Now().Add(constants.RefreshTokenTTL), loginSession.RefreshExpiresAt, 5*time.Second)
	assert.Equal(t, 1, f.sessions.count())
}

func TestLogin_UnknownIDAndWrongPasswordIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")

	_, unknownErr := f.service.Login(context.Background(), auth.LoginInput{LoginID: "nobody", Password: "pw123456"})
	_, wrongErr := f.service.Login(context.Background(), auth.LoginInput{LoginID: "u1", Password: "wrong-pass"})

	unknownApp := apperr.As(unknownErr)
	wrongApp := apperr.As(wrongErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)
	assert.Equal(t, unknownApp.Code, wrongApp.Code)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
}

func TestLogin_RevokesAllPreviousSessions(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")

	first := f.login(t, "u1", "pw123456")
	second := f.login(t, "u1", "pw123456")

	// Only the newest login survives.
	assert.Equal(t, 1, f.sessions.count())

	// The first login's refresh credential still verifies cryptographically
	// but must be rejected as revoked.
	_, err := f.service.Renew(context.Background(), first.DeviceID, first.RefreshToken)
	var rejection *auth.RenewalError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, auth.RenewalRevoked, rejection.Reason)

	// The second login keeps working.
	renewed, err := f.service.Renew(context.Background(), second.DeviceID, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

// ── Authenticate ────────────────────────────────────────────────────────────

func TestAuthenticate_ValidAccessToken(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	identity, renewed, err := f.service.Authenticate(
		context.Background(), loginSession.DeviceID, loginSession.AccessToken, loginSession.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, renewed, "no renewal expected for a fresh token")
	assert.Equal(t, account.ID, identity.AccountID)
	assert.Equal(t, "u1", identity.LoginID)
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name     string
		deviceID string
		access   string
	}{
		{"no device id", "", "some-token"},
		{"no access token", "some-device", ""},
		{"nothing", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.service.Authenticate(context.Background(), tc.deviceID, tc.access, "")
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		})
	}
}

func TestAuthenticate_RefreshTokenInAccessSlot(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	// A refresh credential presented where an access credential belongs must
	// be rejected before any verification.
	_, _, err := f.service.Authenticate(
		context.Background(), loginSession.DeviceID, loginSession.RefreshToken, loginSession.RefreshToken)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	otherTokens, err := sec.NewTokenService("attacker-secret-value", "lootforge.dev")
	require.NoError(t, err)
	forged, err := otherTokens.IssueAccess(1, time.Minute)
	require.NoError(t, err)

	_, _, authErr := f.service.Authenticate(context.Background(), loginSession.DeviceID, forged, loginSession.RefreshToken)
	appErr := apperr.As(authErr)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestAuthenticate_TransparentRenewal(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	// Mint an already-expired access credential for the same account.
	expiredAccess, err := f.tokens.IssueAccess(account.ID, -time.Minute)
	require.NoError(t, err)

	identity, renewedToken, authErr := f.service.Authenticate(
		context.Background(), loginSession.DeviceID, expiredAccess, loginSession.RefreshToken)
	require.NoError(t, authErr)
	assert.Equal(t, account.ID, identity.AccountID)
	require.NotEmpty(t, renewedToken, "renewal must hand back a replacement access token")

	// The replacement is a valid access credential for the same account.
	claims, err := f.tokens.Decode(renewedToken)
	require.NoError(t, err)
	assert.Equal(t, sec.TokenTypeAccess, claims.Type())
	assert.Equal(t, account.ID, claims.AccountID)

	// The refresh credential was not rotated.
	_, err = f.sessions.FindByTokenAndAccount(context.Background(), loginSession.RefreshToken, account.ID)
	assert.NoError(t, err)
}

func TestAuthenticate_ExpiredAccessWithoutRefresh(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	expiredAccess, err := f.tokens.IssueAccess(account.ID, -time.Minute)
	require.NoError(t, err)

	_, _, authErr := f.service.Authenticate(context.Background(), loginSession.DeviceID, expiredAccess, "")
	appErr := apperr.As(authErr)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestAuthenticate_DeletedAccount(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	f.accounts.delete(account.ID)

	_, _, err := f.service.Authenticate(
		context.Background(), loginSession.DeviceID, loginSession.AccessToken, loginSession.RefreshToken)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// ── Renew ───────────────────────────────────────────────────────────────────

func TestRenew_NoToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Renew(context.Background(), "device", "")
	var rejection *auth.RenewalError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, auth.RenewalNoToken, rejection.Reason)
}

func TestRenew_AccessTokenInRefreshSlot(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	_, err := f.service.Renew(context.Background(), loginSession.DeviceID, loginSession.AccessToken)
	var rejection *auth.RenewalError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, auth.RenewalWrongType, rejection.Reason)
}

func TestRenew_SessionRowExpiryIsAuthoritative(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	// The credential itself is still far from its embedded expiry, but the
	// persisted record has lapsed. The record wins.
	f.sessions.expire(loginSession.RefreshToken)

	_, err := f.service.Renew(context.Background(), loginSession.DeviceID, loginSession.RefreshToken)
	var rejection *auth.RenewalError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, auth.RenewalExpired, rejection.Reason)

	// The lapsed record is evicted, so the next attempt reads as revoked.
	assert.Equal(t, 0, f.sessions.count())
	_, err = f.service.Renew(context.Background(), loginSession.DeviceID, loginSession.RefreshToken)
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, auth.RenewalRevoked, rejection.Reason)
}

func TestRenew_DoesNotExtendSession(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	before, err := f.sessions.FindByTokenAndAccount(context.Background(), loginSession.RefreshToken, account.ID)
	require.NoError(t, err)

	_, err = f.service.Renew(context.Background(), loginSession.DeviceID, loginSession.RefreshToken)
	require.NoError(t, err)

	after, err := f.sessions.FindByTokenAndAccount(context.Background(), loginSession.RefreshToken, account.ID)
	require.NoError(t, err)
	assert.Equal(t, before.ExpiresAt, after.ExpiresAt)
}

// ── Logout ──────────────────────────────────────────────────────────────────

func TestLogout_Idempotent(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	require.NoError(t, f.service.Logout(context.Background(), account.ID, loginSession.RefreshToken))
	assert.Equal(t, 0, f.sessions.count())

	// Logging out again, or with garbage, is still success.
	assert.NoError(t, f.service.Logout(context.Background(), account.ID, loginSession.RefreshToken))
	assert.NoError(t, f.service.Logout(context.Background(), account.ID, ""))
	assert.NoError(t, f.service.Logout(context.Background(), account.ID, "unknown-token"))
}

func TestLogout_OnlyAffectsOwnSession(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	other := f.signup(t, "u2", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	// Another account presenting a foreign refresh credential deletes nothing.
	require.NoError(t, f.service.Logout(context.Background(), other.ID, loginSession.RefreshToken))
	assert.Equal(t, 1, f.sessions.count())
}

func TestLogout_ThenRenewFails(t *testing.T) {
	f := newFixture(t)
	account := f.signup(t, "u1", "pw123456")
	loginSession := f.login(t, "u1", "pw123456")

	require.NoError(t, f.service.Logout(context.Background(), account.ID, loginSession.RefreshToken))

	_, err := f.service.Renew(context.Background(), loginSession.DeviceID, loginSession.RefreshToken)
	var rejection *auth.RenewalError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, auth.RenewalRevoked, rejection.Reason)
}
