// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package character

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/internal/platform/dberr"
)

// PostgresRepository implements Repository backed by pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed character repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create implements Repository.
func (r *PostgresRepository) Create(ctx context.Context, character *Character) error {
	query := `
		INSERT INTO character (account_id, name, health, power, money)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		character.AccountID,
		character.Name,
		character.Health,
		character.Power,
		character.Money,
	).Scan(&character.ID, &character.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Character")
	}

	return nil
}

// FindByID implements Repository.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Character, error) {
	query := `
		SELECT id, account_id, name, health, power, money, created_at
		FROM character
		WHERE id = $1`

	var character Character

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&character.ID,
		&character.AccountID,
		&character.Name,
		&character.Health,
		&character.Power,
		&character.Money,
		&character.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Character")
	}

	return &character, nil
}

// ListByAccount implements Repository.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID int64) ([]Character, error) {
	query := `
		SELECT id, account_id, name, health, power, money, created_at
		FROM character
		WHERE account_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("character_list_failed: %w", err))
	}
	defer rows.Close()

	characters, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Character])
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("character_list_scan_failed: %w", err))
	}

	return characters, nil
}

// Delete implements Repository.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM character WHERE id = $1`, id); err != nil {
		return apperr.Internal(fmt.Errorf("character_delete_failed: %w", err))
	}
	return nil
}
