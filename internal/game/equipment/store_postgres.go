// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package equipment

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

// NewPostgresRepository creates a PostgreSQL-backed equipment repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Equip implements Repository.
func (r *PostgresRepository) Equip(ctx context.Context, characterID int64, itemCode int) (*Entry, error) {
	query := `
		INSERT INTO equipped_item (character_id, item_code)
		VALUES ($1, $2)
		RETURNING id, character_id, item_code, equipped_at`

	var entry Entry

	err := r.pool.QueryRow(ctx, query, characterID, itemCode).Scan(
		&entry.ID,
		&entry.CharacterID,
		&entry.ItemCode,
		&entry.EquippedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Equipped item")
	}

	return &entry, nil
}

// List implements Repository.
func (r *PostgresRepository) List(ctx context.Context, characterID int64) ([]Entry, error) {
	query := `
		SELECT id, character_id, item_code, equipped_at
		FROM equipped_item
		WHERE character_id = $1
		ORDER BY equipped_at`

	rows, err := r.pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("equipment_list_failed: %w", err))
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Entry])
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("equipment_list_scan_failed: %w", err))
	}

	return entries, nil
}

// Unequip implements Repository.
func (r *PostgresRepository) Unequip(ctx context.Context, characterID int64, itemCode int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM equipped_item WHERE character_id = $1 AND item_code = $2`,
		characterID, itemCode,
	)
	if err != nil {
		return apperr.Internal(fmt.Errorf("equipment_unequip_failed: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Equipped item")
	}
	return nil
}
