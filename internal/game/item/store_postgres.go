// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package item

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulkim/lootforge/internal/platform/apperr"
	"github.com/haneulkim/lootforge/internal/platform/dberr"
	"github.com/haneulkim/lootforge/pkg/pagination"
)

// PostgresRepository implements Repository backed by pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed item repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create implements Repository.
func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO item (item_code, name, description, stat, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ItemCode,
		item.Name,
		item.Description,
		item.Stat,
		item.Price,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Item")
	}

	return nil
}

// FindByCode implements Repository.
func (r *PostgresRepository) FindByCode(ctx context.Context, itemCode int) (*Item, error) {
	query := `
		SELECT id, item_code, name, description, stat, price, created_at, updated_at
		FROM item
		WHERE item_code = $1`

	var item Item

	err := r.pool.QueryRow(ctx, query, itemCode).Scan(
		&item.ID,
		&item.ItemCode,
		&item.Name,
		&item.Description,
		&item.Stat,
		&item.Price,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Item")
	}

	return &item, nil
}

// Update implements Repository. Price is deliberately absent from the SET
// list; it is immutable after creation.
func (r *PostgresRepository) Update(ctx context.Context, item *Item) error {
	query := `
		UPDATE item
		SET name = $1, description = $2, stat = $3, updated_at = now()
		WHERE item_code = $4
		RETURNING id, price, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Stat,
		item.ItemCode,
	).Scan(&item.ID, &item.Price, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Item")
	}

	return nil
}

// List implements Repository.
func (r *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]ListEntry, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM item`).Scan(&total); err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("item_count_failed: %w", err))
	}

	query := `
		SELECT item_code, name, price
		FROM item
		ORDER BY item_code
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("item_list_failed: %w", err))
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ListEntry])
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("item_list_scan_failed: %w", err))
	}

	return entries, total, nil
}
