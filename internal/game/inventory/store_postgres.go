// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package inventory

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

// NewPostgresRepository creates a PostgreSQL-backed inventory repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Add implements Repository using an upsert on (character_id, item_code).
func (r *PostgresRepository) Add(ctx context.Context, characterID int64, itemCode, quantity int) (*Entry, error) {
	query := `
		INSERT INTO inventory_item (character_id, item_code, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (character_id, item_code)
		DO UPDATE SET quantity = inventory_item.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING id, character_id, item_code, quantity, created_at, updated_at`

	var entry Entry

	err := r.pool.QueryRow(ctx, query, characterID, itemCode, quantity).Scan(
		&entry.ID,
		&entry.CharacterID,
		&entry.ItemCode,
		&entry.Quantity,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Inventory entry")
	}

	return &entry, nil
}

// FindEntry implements Repository.
func (r *PostgresRepository) FindEntry(ctx context.Context, characterID int64, itemCode int) (*Entry, error) {
	query := `
		SELECT id, character_id, item_code, quantity, created_at, updated_at
		FROM inventory_item
		WHERE character_id = $1 AND item_code = $2`

	var entry Entry

	err := r.pool.QueryRow(ctx, query, characterID, itemCode).Scan(
		&entry.ID,
		&entry.CharacterID,
		&entry.ItemCode,
		&entry.Quantity,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Inventory entry")
	}

	return &entry, nil
}

// List implements Repository.
func (r *PostgresRepository) List(ctx context.Context, characterID int64) ([]Entry, error) {
	query := `
		SELECT id, character_id, item_code, quantity, created_at, updated_at
		FROM inventory_item
		WHERE character_id = $1
		ORDER BY item_code`

	rows, err := r.pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("inventory_list_failed: %w", err))
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Entry])
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("inventory_list_scan_failed: %w", err))
	}

	return entries, nil
}

// Remove implements Repository.
func (r *PostgresRepository) Remove(ctx context.Context, characterID int64, itemCode int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM inventory_item WHERE character_id = $1 AND item_code = $2`,
		characterID, itemCode,
	)
	if err != nil {
		return apperr.Internal(fmt.Errorf("inventory_remove_failed: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Inventory entry")
	}
	return nil
}
