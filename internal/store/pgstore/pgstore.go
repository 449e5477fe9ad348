// Package pgstore keeps items in Postgres through the pgx database/sql
// driver, one row per item with a JSONB column for the values.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/idilsaglam/itemed/internal/model"
)

const driver = "pgx"

type Store struct {
	db    *sql.DB
	fresh bool
}

func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	var existed bool
	if err := db.QueryRowContext(ctx, `SELECT to_regclass('items') IS NOT NULL`).Scan(&existed); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS items (
		id BIGINT PRIMARY KEY,
		param_values JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure items table: %w", err)
	}
	return &Store{db: db, fresh: !existed}, nil
}

func (s *Store) Load(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, param_values FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.Item{}
	for rows.Next() {
		var (
			it  model.Item
			raw []byte
		)
		if err := rows.Scan(&it.ID, &raw); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if err := json.Unmarshal(raw, &it.Values); err != nil {
			return nil, fmt.Errorf("item %d: %w", it.ID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *Store) Fresh(context.Context) (bool, error) { return s.fresh, nil }

func (s *Store) Put(ctx context.Context, it model.Item) error {
	values := it.Values
	if values == nil {
		values = []model.ParamValue{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal item %d: %w", it.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, param_values) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET param_values = EXCLUDED.param_values`,
		it.ID, string(raw))
	if err != nil {
		return fmt.Errorf("upsert item %d: %w", it.ID, err)
	}
	s.fresh = false
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
