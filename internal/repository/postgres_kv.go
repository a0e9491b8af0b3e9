package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartstore-demo/internal/port"
)

const (
	getEntrySQL = `SELECT value FROM kv_entries WHERE key = $1`

	upsertEntrySQL = `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	deleteEntrySQL = `DELETE FROM kv_entries WHERE key = $1`
)

// dbtx is implemented by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresKV struct {
	q dbtx
}

func NewPostgresKV(pool *pgxpool.Pool) port.KeyValueStore {
	return &postgresKV{
		q: pool,
	}
}

func NewPostgresKVWithTx(tx pgx.Tx) port.KeyValueStore {
	// writes join the caller's transaction
	return &postgresKV{
		q: tx,
	}
}

func (r *postgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	var value string
	err := r.q.QueryRow(ctx, getEntrySQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.QueryRow: %w", err)
	}

	return value, true, nil
}

// Set is a single upsert, so it needs no explicit transaction.
func (r *postgresKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := r.q.Exec(ctx, upsertEntrySQL, key, value); err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

func (r *postgresKV) Remove(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := r.q.Exec(ctx, deleteEntrySQL, key); err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}
