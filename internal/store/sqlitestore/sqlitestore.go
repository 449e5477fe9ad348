// Package sqlitestore keeps items in a local SQLite file, one row per item
// with the parameter values as a JSON document.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/itemed/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db    *sql.DB
	fresh bool
}

func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}
	var existing int
	if err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'items'`).Scan(&existing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY,
		param_values TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create items table: %w", err)
	}
	return &Store{db: db, fresh: existing == 0}, nil
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
			raw string
		)
		if err := rows.Scan(&it.ID, &raw); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &it.Values); err != nil {
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
	raw, err := json.Marshal(valuesOrEmpty(it.Values))
	if err != nil {
		return fmt.Errorf("marshal item %d: %w", it.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, param_values) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET param_values = excluded.param_values`,
		it.ID, string(raw))
	if err != nil {
		return fmt.Errorf("upsert item %d: %w", it.ID, err)
	}
	s.fresh = false
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func valuesOrEmpty(v []model.ParamValue) []model.ParamValue {
	if v == nil {
		return []model.ParamValue{}
	}
	return v
}
