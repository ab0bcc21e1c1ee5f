// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Package equipment manages the items characters currently wear. Equipping
// requires the item to be present in the character's inventory.
package equipment

import (
	"context"

	"github.com/haneulkim/lootforge/internal/game/character"
	"github.com/haneulkim/lootforge/internal/platform/apperr"
)

// CharacterResolver gates operations on character ownership.
type CharacterResolver interface {
	ResolveOwned(ctx context.Context, accountID, characterID int64) (*character.Character, error)
}

// InventoryChecker answers whether a character holds an item.
type InventoryChecker interface {
	Holds(ctx context.Context, characterID int64, itemCode int) (bool, error)
}

// Service orchestrates equip and unequip operations.
type Service struct {
	repo       Repository
	characters CharacterResolver
	inventory  InventoryChecker
}

// NewService creates the equipment service.
func NewService(repo Repository, characters CharacterResolver, inventory InventoryChecker) *Service {
	return &Service{repo: repo, characters: characters, inventory: inventory}
}

// Equip puts an inventory item on the character.
//
// Preconditions, in order: the caller owns the character, the character holds
// the item, and the item is not already equipped.
func (service *Service) Equip(ctx context.Context, accountID, characterID int64, itemCode int) (*Entry, error) {
	if _, err := service.characters.ResolveOwned(ctx, accountID, characterID); err != nil {
		return nil, err
	}

	held, err := service.inventory.Holds(ctx, characterID, itemCode)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, apperr.Unprocessable("Item is not in the character's inventory")
	}

	// The unique constraint turns a concurrent double equip into Conflict.
	return service.repo.Equip(ctx, characterID, itemCode)
}

// List returns everything the character has equipped.
func (service *Service) List(ctx context.Context, accountID, characterID int64) ([]Entry, error) {
	if _, err := service.characters.ResolveOwned(ctx, accountID, characterID); err != nil {
		return nil, err
	}

	return service.repo.List(ctx, characterID)
}

// Unequip takes an equipped item off the character.
func (service *Service) Unequip(ctx context.Context, accountID, characterID int64, itemCode int) error {
	if _, err := service.characters.ResolveOwned(ctx, accountID, characterID); err != nil {
		return err
	}

	return service.repo.Unequip(ctx, characterID, itemCode)
}
