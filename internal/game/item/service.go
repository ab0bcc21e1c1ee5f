// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Package item manages the global item catalog: the set of purchasable and
// equippable definitions that gameplay domains reference by item code.
package item

import (
	"context"

	"github.com/haneulkim/lootforge/pkg/pagination"
)

// Service orchestrates catalog reads and writes.
type Service struct {
	repo Repository
}

// NewService creates the item service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries validated catalog-entry data into the service layer.
type CreateInput struct {
	ItemCode    int
	Name        string
	Description string
	Stat        Stat
	Price       int
}

// Create adds a new catalog entry. The item code must be unique.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Item, error) {
	entry := &Item{
		ItemCode:    input.ItemCode,
		Name:        input.Name,
		Description: input.Description,
		Stat:        input.Stat,
		Price:       input.Price,
	}
	if entry.Stat == nil {
		entry.Stat = Stat{}
	}

	if err := service.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// UpdateInput carries the mutable catalog fields.
type UpdateInput struct {
	Name        string
	Description string
	Stat        Stat
}

// Update rewrites the name and stat block of an existing entry. Price cannot
// be changed through any code path.
func (service *Service) Update(ctx context.Context, itemCode int, input UpdateInput) (*Item, error) {
	entry := &Item{
		ItemCode:    itemCode,
		Name:        input.Name,
		Description: input.Description,
		Stat:        input.Stat,
	}
	if entry.Stat == nil {
		entry.Stat = Stat{}
	}

	if err := service.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Get resolves a single catalog entry by code.
func (service *Service) Get(ctx context.Context, itemCode int) (*Item, error) {
	return service.repo.FindByCode(ctx, itemCode)
}

// List returns one catalog page with pagination metadata.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]ListEntry, pagination.Meta, error) {
	entries, total, err := service.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return entries, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}
