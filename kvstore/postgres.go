package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a KeyValue backed by a single kv_records table.
type Postgres struct {
	pool *pgxpool.Pool
}

// Schema creates the backing table. Run once at deploy time or on boot.
const Schema = `
CREATE TABLE IF NOT EXISTS kv_records (
	key        text PRIMARY KEY,
	value      jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);`

// NewPostgres connects a pgx pool and ensures the schema exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_records (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (p *Postgres) SetMulti(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for key, value := range entries {
		batch.Queue(`
			INSERT INTO kv_records (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		`, key, value)
	}

	br := p.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch set: %w", err)
		}
	}

	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT key FROM kv_records WHERE key LIKE $1 || '%' ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("keys %s: %w", prefix, err)
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

func (p *Postgres) Count(ctx context.Context, prefix string) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM kv_records WHERE key LIKE $1 || '%'`, prefix).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", prefix, err)
	}

	return n, nil
}
