// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulkim/lootforge/internal/game/character"
	"github.com/haneulkim/lootforge/internal/platform/apperr"
)

type memRepo struct {
	nextID int64
	rows   map[int64]*character.Character
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, rows: make(map[int64]*character.Character)}
}

func (m *memRepo) Create(_ context.Context, c *character.Character) error {
	for _, row := range m.rows {
		if row.Name == c.Name {
			return apperr.Conflict("Character already exists")
		}
	}
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	m.nextID++
	copied := *c
	m.rows[c.ID] = &copied
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id int64) (*character.Character, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Character")
	}
	copied := *row
	return &copied, nil
}

func (m *memRepo) ListByAccount(_ context.Context, accountID int64) ([]character.Character, error) {
	var result []character.Character
	for _, row := range m.rows {
		if row.AccountID == accountID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func TestCreate_StartingAttributes(t *testing.T) {
	service := character.NewService(newMemRepo())

	created, err := service.Create(context.Background(), 1, "Ragnar")
	require.NoError(t, err)

	assert.Equal(t, 500, created.Health)
	assert.Equal(t, 100, created.Power)
	assert.Equal(t, 10000, created.Money)
	assert.Equal(t, int64(1), created.AccountID)
}

func TestCreate_DuplicateNameAcrossAccounts(t *testing.T) {
	service := character.NewService(newMemRepo())

	_, err := service.Create(context.Background(), 1, "Ragnar")
	require.NoError(t, err)

	_, err = service.Create(context.Background(), 2, "Ragnar")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestGet_MoneyVisibleOnlyToOwner(t *testing.T) {
	service := character.NewService(newMemRepo())

	created, err := service.Create(context.Background(), 1, "Ragnar")
	require.NoError(t, err)

	ownerView, err := service.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.NotNil(t, ownerView.Money)
	assert.Equal(t, 10000, *ownerView.Money)

	foreignView, err := service.Get(context.Background(), 2, created.ID)
	require.NoError(t, err)
	assert.Nil(t, foreignView.Money)
	assert.Equal(t, created.Name, foreignView.Name)
	assert.Equal(t, 500, foreignView.Health)
}

func TestDelete_OwnerOnly(t *testing.T) {
	repo := newMemRepo()
	service := character.NewService(repo)

	created, err := service.Create(context.Background(), 1, "Ragnar")
	require.NoError(t, err)

	err = service.Delete(context.Background(), 2, created.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	require.NoError(t, service.Delete(context.Background(), 1, created.ID))
	_, err = repo.FindByID(context.Background(), created.ID)
	assert.Error(t, err)
}

func TestResolveOwned(t *testing.T) {
	service := character.NewService(newMemRepo())

	created, err := service.Create(context.Background(), 1, "Ragnar")
	require.NoError(t, err)

	resolved, err := service.ResolveOwned(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	_, err = service.ResolveOwned(context.Background(), 2, created.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	_, err = service.ResolveOwned(context.Background(), 1, 999)
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
