// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulkim/lootforge/internal/platform/dberr"
)

// PostgresAccountRepository implements AccountRepository backed by pgxpool.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountRepository creates a PostgreSQL-backed account repository.
func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// Create implements AccountRepository.
func (r *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO account (login_id, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		account.LoginID,
		account.PasswordHash,
		account.DisplayName,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "account")
	}

	return nil
}

// FindByLoginID implements AccountRepository.
func (r *PostgresAccountRepository) FindByLoginID(ctx context.Context, loginID string) (*Account, error) {
	query := `
		SELECT id, login_id, password_hash, display_name, created_at
		FROM account
		WHERE login_id = $1`

	return r.scanAccount(ctx, query, loginID)
}

// FindByID implements AccountRepository.
func (r *PostgresAccountRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	query := `
		SELECT id, login_id, password_hash, display_name, created_at
		FROM account
		WHERE id = $1`

	return r.scanAccount(ctx, query, id)
}

func (r *PostgresAccountRepository) scanAccount(ctx context.Context, query string, arg any) (*Account, error) {
	var account Account

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.LoginID,
		&account.PasswordHash,
		&account.DisplayName,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "account")
	}

	return &account, nil
}

// PostgresSessionRepository implements SessionRepository backed by pgxpool.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepository creates a PostgreSQL-backed session repository.
func NewPostgresSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create implements SessionRepository.
func (r *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO session (token, account_id, device_id, origin_addr, client_descriptor, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		session.Token,
		session.AccountID,
		session.DeviceID,
		session.OriginAddr,
		session.ClientDescriptor,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "session")
	}

	return nil
}

// FindByTokenAndAccount implements SessionRepository.
func (r *PostgresSessionRepository) FindByTokenAndAccount(ctx context.Context, token string, accountID int64) (*Session, error) {
	query := `
		SELECT id, token, account_id, device_id, origin_addr, client_descriptor, expires_at, created_at
		FROM session
		WHERE token = $1 AND account_id = $2`

	var session Session

	err := r.pool.QueryRow(ctx, query, token, accountID).Scan(
		&session.ID,
		&session.Token,
		&session.AccountID,
		&session.DeviceID,
		&session.OriginAddr,
		&session.ClientDescriptor,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "session")
	}

	return &session, nil
}

// InvalidateAll implements SessionRepository.
func (r *PostgresSessionRepository) InvalidateAll(ctx context.Context, accountID int64) error {
	query := `DELETE FROM session WHERE account_id = $1`

	if _, err := r.pool.Exec(ctx, query, accountID); err != nil {
		return fmt.Errorf("session_invalidate_all_failed: %w", err)
	}

	return nil
}

// Delete implements SessionRepository.
func (r *PostgresSessionRepository) Delete(ctx context.Context, sessionID int64) error {
	query := `DELETE FROM session WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("session_delete_failed: %w", err)
	}

	return nil
}
