// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haneulkim/lootforge/internal/platform/constants"
	"github.com/haneulkim/lootforge/internal/platform/middleware"
	requestutil "github.com/haneulkim/lootforge/internal/platform/request"
	"github.com/haneulkim/lootforge/internal/platform/respond"
	"github.com/haneulkim/lootforge/internal/platform/validate"
)

// Input constraints enforced at the delivery layer.
const (
	loginIDMinLen     = 4
	loginIDMaxLen     = 32
	passwordMinLen    = 6
	passwordMaxLen    = 72 // bcrypt input limit
	displayNameMaxLen = 50
)

// Handler exposes the auth endpoints over HTTP.
type Handler struct {
	service *Service
	// secureCookies controls the Secure attribute on issued cookies. Disabled
	// only in local development over plain HTTP.
	secureCookies bool
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// Routes assembles the auth route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", h.handleSignup)
	router.Post("/login", h.handleLogin)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", h.handleLogout)
		protected.Get("/me", h.handleMe)
	})

	return router
}

type signupRequest struct {
	LoginID         string `json:"login_id"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	DisplayName     string `json:"display_name"`
}

func (h *Handler) handleSignup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required("login_id", input.LoginID).
		Alphanum("login_id", input.LoginID).
		MinLen("login_id", input.LoginID, loginIDMinLen).
		MaxLen("login_id", input.LoginID, loginIDMaxLen).
		Required("password", input.Password).
		MinLen("password", input.Password, passwordMinLen).
		MaxLen("password", input.Password, passwordMaxLen).
		Equals("password_confirm", input.PasswordConfirm, input.Password, "Passwords do not match").
		Required("display_name", input.DisplayName).
		MaxLen("display_name", input.DisplayName, displayNameMaxLen).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := h.service.Signup(request.Context(), SignupInput{
		LoginID:     input.LoginID,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Account  *Account `json:"account"`
	DeviceID string   `json:"device_id"`
}

func (h *Handler) handleLogin(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required("login_id", input.LoginID).
		Required("password", input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	loginSession, err := h.service.Login(request.Context(), LoginInput{
		LoginID:          input.LoginID,
		Password:         input.Password,
		OriginAddr:       request.RemoteAddr,
		ClientDescriptor: request.UserAgent(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Bind the full credential set to the new device slot.
	http.SetCookie(writer, middleware.DeviceIDCookie(loginSession.DeviceID, h.secureCookies))
	http.SetCookie(writer, middleware.AccessTokenCookie(loginSession.DeviceID, loginSession.AccessToken, h.secureCookies))
	http.SetCookie(writer, middleware.RefreshTokenCookie(loginSession.DeviceID, loginSession.RefreshToken, h.secureCookies))

	respond.OK(writer, loginResponse{
		Account:  loginSession.Account,
		DeviceID: loginSession.DeviceID,
	})
}

func (h *Handler) handleLogout(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deviceID := deviceIDFromCookie(request)
	refreshToken := refreshTokenFromCookie(request, deviceID)

	if err := h.service.Logout(request.Context(), accountID, refreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Drop all three slots regardless of whether a session was found.
	if deviceID != "" {
		http.SetCookie(writer, middleware.ExpiredCookie(constants.AccessTokenCookiePrefix+deviceID, h.secureCookies))
		http.SetCookie(writer, middleware.ExpiredCookie(constants.RefreshTokenCookiePrefix+deviceID, h.secureCookies))
	}
	http.SetCookie(writer, middleware.ExpiredCookie(constants.DeviceIDCookieName, h.secureCookies))

	respond.NoContent(writer)
}

func (h *Handler) handleMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}

func deviceIDFromCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.DeviceIDCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

func refreshTokenFromCookie(request *http.Request, deviceID string) string {
	if deviceID == "" {
		return ""
	}
	cookie, err := request.Cookie(constants.RefreshTokenCookiePrefix + deviceID)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
