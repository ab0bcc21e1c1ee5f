// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

// Package character manages playable avatars: creation with fixed starting
// attributes, owner-aware lookups, and deletion.
package character

import (
	"context"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
)

// Service orchestrates character operations.
type Service struct {
	repo Repository
}

// NewService creates the character service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create makes a new character for the account with the standard starting
// attributes. The name is globally unique across all accounts.
func (service *Service) Create(ctx context.Context, accountID int64, name string) (*Character, error) {
	character := &Character{
		AccountID: accountID,
		Name:      name,
		Health:    StartingHealth,
		Power:     StartingPower,
		Money:     StartingMoney,
	}

	if err := service.repo.Create(ctx, character); err != nil {
		return nil, err
	}

	return character, nil
}

// Get resolves a character and projects it for the viewer. Any authenticated
// account may look up any character; only the owner sees money.
func (service *Service) Get(ctx context.Context, viewerAccountID, characterID int64) (*View, error) {
	character, err := service.repo.FindByID(ctx, characterID)
	if err != nil {
		return nil, err
	}

	return character.ViewFor(viewerAccountID), nil
}

// ListOwn returns all characters owned by the account, with money visible.
func (service *Service) ListOwn(ctx context.Context, accountID int64) ([]*View, error) {
	characters, err := service.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(characters))
	for i := range characters {
		views = append(views, characters[i].ViewFor(accountID))
	}

	return views, nil
}

// Delete removes a character. Only the owning account may delete it.
func (service *Service) Delete(ctx context.Context, accountID, characterID int64) error {
	character, err := service.repo.FindByID(ctx, characterID)
	if err != nil {
		return err
	}

	if character.AccountID != accountID {
		return apperr.Forbidden("Character belongs to another account")
	}

	return service.repo.Delete(ctx, character.ID)
}

// ResolveOwned loads a character and verifies the account owns it. Shared by
// the inventory and equipment domains for their ownership gate.
func (service *Service) ResolveOwned(ctx context.Context, accountID, characterID int64) (*Character, error) {
	character, err := service.repo.FindByID(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if character.AccountID != accountID {
		return nil, apperr.Forbidden("Character belongs to another account")
	}

	return character, nil
}
