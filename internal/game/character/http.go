// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haneulkim/lootforge/internal/platform/request"
	"github.com/haneulkim/lootforge/internal/platform/respond"
	"github.com/haneulkim/lootforge/internal/platform/validate"
)

const nameMaxLen = 30

// Handler exposes the character endpoints over HTTP. All routes require an
// authenticated account; the router mounts this tree behind RequireAuth.
type Handler struct {
	service *Service
}

// NewHandler creates the character HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the character route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.handleListOwn)
	router.Post("/", h.handleCreate)
	router.Get("/{characterID}", h.handleGet)
	router.Delete("/{characterID}", h.handleDelete)

	return router
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreate(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, nameMaxLen).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	character, err := h.service.Create(request.Context(), accountID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, character)
}

func (h *Handler) handleGet(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	characterID, err := requestutil.IntParam(request, "characterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := h.service.Get(request.Context(), accountID, characterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

func (h *Handler) handleListOwn(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := h.service.ListOwn(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

func (h *Handler) handleDelete(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	characterID, err := requestutil.IntParam(request, "characterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.Delete(request.Context(), accountID, characterID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
