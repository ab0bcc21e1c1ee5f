// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package middleware

import (
	"net/http"

	stdctx "context"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/ctxutil"
	"github.com/haneulkim/lootforge/internal/platform/respond"
	"github.com/haneulkim/lootforge/internal/platform/sec"
)

// Authenticator is the access-guard contract consumed by this middleware.
//
// # Why an interface?
//
// Defining Authenticator here decouples the middleware from the auth service
// implementation, allowing us to easily inject stubs during unit testing.
//
// The renewed token return value is non-empty only when an expired access
// credential was transparently healed during the call; the middleware must
// then re-bind it to the device-scoped slot.
type Authenticator interface {
	Authenticate(ctx stdctx.Context, deviceID, accessToken, refreshToken string) (identity *sec.Identity, renewedAccessToken string, err error)
}

// AuthenticateDevice runs the access guard over the device-scoped credential cookies.
//
// # Flow
//
//  1. Read the 'currentDeviceId' cookie. If absent, the request proceeds as
//     anonymous; protected routes are blocked later by [RequireAuth].
//  2. Read the access and refresh cookies namespaced by that device id.
//  3. Run the guard. On success, inject [*sec.Identity] into the context.
//  4. If the guard renewed an expired access credential, transparently
//     re-bind the new credential to the access slot. The caller observes no
//     difference from a normally-authenticated request.
//  5. On guard failure, reject with the structured auth error.
func AuthenticateDevice(guard Authenticator, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			deviceID := cookieValue(request, constants.DeviceIDCookieName)
			if deviceID == "" {
				next.ServeHTTP(writer, request)
				return
			}

			accessToken := cookieValue(request, constants.AccessTokenCookiePrefix+deviceID)
			refreshToken := cookieValue(request, constants.RefreshTokenCookiePrefix+deviceID)

			// A device id with no bound credentials is a stale cookie, not an
			// authentication attempt.
			if accessToken == "" && refreshToken == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Access Guard ───────────────────────────────────────────────
			identity, renewedAccessToken, err := guard.Authenticate(request.Context(), deviceID, accessToken, refreshToken)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Transparent Renewal Re-bind ────────────────────────────────
			if renewedAccessToken != "" {
				http.SetCookie(writer, AccessTokenCookie(deviceID, renewedAccessToken, secureCookies))
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAccount(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [AuthenticateDevice].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetAccount(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Login required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Device-Scoped Cookie Construction

// DeviceIDCookie builds the cookie that binds a browser context to its device slot.
func DeviceIDCookie(deviceID string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.DeviceIDCookieName,
		Value:    deviceID,
		Path:     "/",
		MaxAge:   int(constants.RefreshTokenTTL.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// AccessTokenCookie builds the device-scoped access credential cookie.
func AccessTokenCookie(deviceID, token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.AccessTokenCookiePrefix + deviceID,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.AccessTokenTTL.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// RefreshTokenCookie builds the device-scoped refresh credential cookie.
func RefreshTokenCookie(deviceID, token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.RefreshTokenCookiePrefix + deviceID,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.RefreshTokenTTL.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie builds a cookie that instructs the client to drop the named slot.
func ExpiredCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// cookieValue reads a cookie value, returning "" when absent.
func cookieValue(request *http.Request, name string) string {
	cookie, err := request.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
