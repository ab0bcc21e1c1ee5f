// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package equipment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haneulkim/lootforge/internal/platform/request"
	"github.com/haneulkim/lootforge/internal/platform/respond"
	"github.com/haneulkim/lootforge/internal/platform/validate"
)

// Handler exposes the equipment endpoints over HTTP. Mounted behind
// RequireAuth; ownership of the target character is enforced per call.
type Handler struct {
	service *Service
}

// NewHandler creates the equipment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the equipment route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{characterID}", h.handleList)
	router.Post("/{characterID}", h.handleEquip)
	router.Delete("/{characterID}/{itemCode}", h.handleUnequip)

	return router
}

type equipRequest struct {
	ItemCode int `json:"item_code"`
}

func (h *Handler) handleEquip(writer http.ResponseWriter, request *http.Request) {
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

	var input equipRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Positive("item_code", input.ItemCode).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := h.service.Equip(request.Context(), accountID, characterID, input.ItemCode)
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

func (h *Handler) handleUnequip(writer http.ResponseWriter, request *http.Request) {
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

	if err := h.service.Unequip(request.Context(), accountID, characterID, int(itemCode)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
