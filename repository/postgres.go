package repository

import (
	"context"
	"fmt"

	"banker/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over a pool or transaction
type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a LedgerRepository backed by a balances table. Deltas are
// applied in SQL, so the read-modify-write is atomic in the database without
// any process-level locking.
type PostgresStore struct {
	q queryable
}

// NewPostgresStore creates a postgres-backed ledger
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{q: db.Pool}
}

// GetBalance returns the stored balance for a user, or 0 if absent
func (s *PostgresStore) GetBalance(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT balance
		FROM balances
		WHERE user_id = $1
	`

	var balance int64
	err := s.q.QueryRow(ctx, query, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for user %s: %w", userID, err)
	}

	return balance, nil
}

// UpdateBalance adds delta to the user's balance, creating the row at 0 if
// absent, and returns the new balance
func (s *PostgresStore) UpdateBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	query := `
		INSERT INTO balances (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	var balance int64
	err := s.q.QueryRow(ctx, query, userID, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance for user %s: %w", userID, err)
	}

	return balance, nil
}

// Load returns the entire ledger
func (s *PostgresStore) Load(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT user_id, balance
		FROM balances
	`

	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	defer rows.Close()

	ledger := make(map[string]int64)
	for rows.Next() {
		var userID string
		var balance int64
		if err := rows.Scan(&userID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		ledger[userID] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}

	return ledger, nil
}
