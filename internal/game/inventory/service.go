// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Package inventory manages the stacks of catalog items held by characters.
// Every operation is gated on the caller owning the target character.
package inventory

import (
	"context"

	"github.com/haneulkim/lootforge/internal/game/character"
	"github.com/haneulkim/lootforge/internal/game/item"
	"github.com/haneulkim/lootforge/internal/platform/apperr"
)

// CharacterResolver gates operations on character ownership.
type CharacterResolver interface {
	ResolveOwned(ctx context.Context, accountID, characterID int64) (*character.Character, error)
}

// CatalogReader verifies that an item code exists in the catalog.
type CatalogReader interface {
	FindByCode(ctx context.Context, itemCode int) (*item.Item, error)
}

// Service orchestrates inventory operations.
type Service struct {
	repo       Repository
	characters CharacterResolver
	catalog    CatalogReader
}

// NewService creates the inventory service.
func NewService(repo Repository, characters CharacterResolver, catalog CatalogReader) *Service {
	return &Service{repo: repo, characters: characters, catalog: catalog}
}

// Add places quantity copies of a catalog item into the character's
// inventory, stacking onto an existing entry if present.
func (service *Service) Add(ctx context.Context, accountID, characterID int64, itemCode, quantity int) (*Entry, error) {
	if _, err := service.characters.ResolveOwned(ctx, accountID, characterID); err != nil {
		return nil, err
	}

	// The catalog is the source of truth for valid codes; an unknown code is
	// a NotFound, not a silent orphan row.
	if _, err := service.catalog.FindByCode(ctx, itemCode); err != nil {
		return nil, err
	}

	return service.repo.Add(ctx, characterID, itemCode, quantity)
}

// List returns the character's inventory.
func (service *Service) List(ctx context.Context, accountID, characterID int64) ([]Entry, error) {
	if _, err := service.characters.ResolveOwned(ctx, accountID, characterID); err != nil {
		return nil, err
	}

	return service.repo.List(ctx, characterID)
}

// Remove deletes the character's stack of the given item.
func (service *Service) Remove(ctx context.Context, accountID, characterID int64, itemCode int) error {
	if _, err := service.characters.ResolveOwned(ctx, accountID, characterID); err != nil {
		return err
	}

	return service.repo.Remove(ctx, characterID, itemCode)
}

// Holds reports whether the character currently holds the item. Used by the
// equipment domain as its precondition.
func (service *Service) Holds(ctx context.Context, characterID int64, itemCode int) (bool, error) {
	_, err := service.repo.FindEntry(ctx, characterID, itemCode)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

func isNotFound(err error) bool {
	appErr := apperr.As(err)
	return appErr != nil && appErr.Code == "NOT_FOUND"
}
