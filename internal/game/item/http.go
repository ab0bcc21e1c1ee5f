// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package item

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
	requestutil "github.com/haneulkim/lootforge/internal/platform/request"
	"github.com/haneulkim/lootforge/internal/platform/respond"
	"github.com/haneulkim/lootforge/internal/platform/validate"
	"github.com/haneulkim/lootforge/pkg/pagination"
)

const itemNameMaxLen = 100

// Handler exposes the item catalog endpoints over HTTP.
//
// Catalog endpoints are public; the catalog carries no per-player data.
type Handler struct {
	service *Service
}

// NewHandler creates the item HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the catalog route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.handleList)
	router.Post("/", h.handleCreate)
	router.Get("/{itemCode}", h.handleGet)
	router.Patch("/{itemCode}", h.handleUpdate)

	return router
}

type createRequest struct {
	ItemCode    int    `json:"item_code"`
	Name        string `json:"item_name"`
	Description string `json:"description"`
	Stat        Stat   `json:"item_stat"`
	Price       int    `json:"item_price"`
}

func (h *Handler) handleCreate(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Positive("item_code", input.ItemCode).
		Required("item_name", input.Name).
		MaxLen("item_name", input.Name, itemNameMaxLen).
		Positive("item_price", input.Price).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := h.service.Create(request.Context(), CreateInput{
		ItemCode:    input.ItemCode,
		Name:        input.Name,
		Description: input.Description,
		Stat:        input.Stat,
		Price:       input.Price,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

type updateRequest struct {
	Name        string `json:"item_name"`
	Description string `json:"description"`
	Stat        Stat   `json:"item_stat"`

	// Price is a pointer so a present-but-forbidden value can be told apart
	// from an absent one.
	Price *int `json:"item_price"`
}

func (h *Handler) handleUpdate(writer http.ResponseWriter, request *http.Request) {
	itemCode, err := requestutil.IntParam(request, "itemCode")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Price != nil {
		respond.Error(writer, request, apperr.Unprocessable("Item price cannot be changed"))
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required("item_name", input.Name).
		MaxLen("item_name", input.Name, itemNameMaxLen).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := h.service.Update(request.Context(), int(itemCode), UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		Stat:        input.Stat,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

func (h *Handler) handleGet(writer http.ResponseWriter, request *http.Request) {
	itemCode, err := requestutil.IntParam(request, "itemCode")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := h.service.Get(request.Context(), int(itemCode))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

func (h *Handler) handleList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	entries, meta, err := h.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}
