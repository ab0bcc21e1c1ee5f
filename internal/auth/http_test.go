// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulkim/lootforge/internal/auth"
	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/middleware"
)

// newRouter mounts the auth handler behind the device guard, mirroring the
// production assembly.
func newRouter(f *fixture) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.AuthenticateDevice(f.service, false))
	router.Mount("/auth", auth.NewHandler(f.service, false).Routes())
	return router
}

func postJSON(t *testing.T, router http.Handler, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHTTP_SignupValidation(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := postJSON(t, router, "/auth/signup",
		`{"login_id":"u1","password":"pw123456","password_confirm":"different","display_name":"Player"}`, nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "password_confirm")
}

func TestHTTP_SignupAndLoginSetsDeviceScopedCookies(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := postJSON(t, router, "/auth/signup",
		`{"login_id":"u1","password":"pw123456","password_confirm":"pw123456","display_name":"Player"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "pw123456", "password material must never be echoed")

	recorder = postJSON(t, router, "/auth/login", `{"login_id":"u1","password":"pw123456"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	cookies := recorder.Result().Cookies()
	var deviceID string
	for _, cookie := range cookies {
		if cookie.Name == constants.DeviceIDCookieName {
			deviceID = cookie.Value
		}
	}
	require.NotEmpty(t, deviceID)

	names := make(map[string]*http.Cookie, len(cookies))
	for _, cookie := range cookies {
		names[cookie.Name] = cookie
	}
	access := names[constants.AccessTokenCookiePrefix+deviceID]
	refresh := names[constants.RefreshTokenCookiePrefix+deviceID]
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
}

func TestHTTP_LoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	router := newRouter(f)

	recorder := postJSON(t, router, "/auth/login", `{"login_id":"u1","password":"nope1234"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_CREDENTIALS")
}

func TestHTTP_LogoutClearsCookiesAndSession(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "u1", "pw123456")
	router := newRouter(f)

	login := postJSON(t, router, "/auth/login", `{"login_id":"u1","password":"pw123456"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	sessionCookies := login.Result().Cookies()
	require.Equal(t, 1, f.sessions.count())

	logout := postJSON(t, router, "/auth/logout", ``, sessionCookies)
	require.Equal(t, http.StatusNoContent, logout.Code)
	assert.Equal(t, 0, f.sessions.count())

	// All three slots are instructed to expire.
	expired := 0
	for _, cookie := range logout.Result().Cookies() {
		if cookie.MaxAge < 0 {
			expired++
		}
	}
	assert.Equal(t, 3, expired)
}

func TestHTTP_LogoutWithoutLogin(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := postJSON(t, router, "/auth/logout", ``, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
