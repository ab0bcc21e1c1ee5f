// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haneulkim/lootforge/internal/platform/request"
	"github.com/haneulkim/lootforge/internal/platform/respond"
	"github.com/haneulkim/lootforge/internal/platform/validate"
)

// Handler exposes the inventory endpoints over HTTP. Mounted behind
// RequireAuth; ownership of the target character is enforced per call.
type Handler struct {
	service *Service
}

// NewHandler creates the inventory HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the inventory route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{characterID}", h.handleList)
	router.Post("/{characterID}", h.handleAdd)
	router.Delete("/{characterID}/{itemCode}", h.handleRemove)

	return router
}

type addRequest struct {
	ItemCode int `json:"item_code"`
	Quantity int `json:"quantity"`
}

func (h *Handler) handleAdd(writer http.ResponseWriter, request *http.Request) {
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

	var input addRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	validator := &validate.Validator{}
	err = validator.
		Positive("item_code", input.ItemCode).
		Positive("quantity", input.Quantity).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := h.service.Add(request.Context(), accountID, characterID, input.ItemCode, input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

func (h *Handler) handleList(writer http.ResponseWriter, request *http.Request) {
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

	entries, err := h.service.List(request.Context(), accountID, characterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

func (h *Handler) handleRemove(writer http.ResponseWriter, request *http.Request) {
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

	itemCode, err := requestutil.IntParam(request, "itemCode")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.Remove(request.Context(), accountID, characterID, int(itemCode)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
