// Package store defines the persistence collaborator invoked when items are
// saved, added or removed, and opens the configured implementation.
package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/idilsaglam/itemed/internal/config"
	"github.com/idilsaglam/itemed/internal/model"
	"github.com/idilsaglam/itemed/internal/store/boltstore"
	"github.com/idilsaglam/itemed/internal/store/jsonstore"
	"github.com/idilsaglam/itemed/internal/store/memstore"
	"github.com/idilsaglam/itemed/internal/store/pgstore"
	"github.com/idilsaglam/itemed/internal/store/sqlitestore"
)

// Backend records committed items. Load returns items ordered by id, which
// is also their insertion order since ids only grow.
type Backend interface {
	Load(ctx context.Context) ([]model.Item, error)
	// Fresh reports whether nothing has ever been stored.
	Fresh(ctx context.Context) (bool, error)
	Put(ctx context.Context, it model.Item) error
	// Delete of an unknown id is not an error.
	Delete(ctx context.Context, id int64) error
	Close() error
}

var (
	_ Backend = (*memstore.Store)(nil)
	_ Backend = (*jsonstore.Store)(nil)
	_ Backend = (*sqlitestore.Store)(nil)
	_ Backend = (*boltstore.Store)(nil)
	_ Backend = (*pgstore.Store)(nil)
)

// Open returns the backend described by cfg.
func Open(ctx context.Context, cfg config.Backend) (Backend, error) {
	switch cfg.Kind {
	case config.BackendMemory:
		return memstore.New(), nil
	case config.BackendJSON:
		return jsonstore.New(cfg.Path), nil
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.Path)
	case config.BackendBolt:
		return boltstore.Open(cfg.Path)
	case config.BackendPostgres:
		return pgstore.Open(ctx, cfg.DSN)
	}
	return nil, fmt.Errorf("open backend: unknown kind %q", cfg.Kind)
}

// LoadOrSeed loads the backend. A fresh backend gets seed written through
// and returned instead; one emptied by removals stays empty.
func LoadOrSeed(ctx context.Context, b Backend, seed []model.Item) ([]model.Item, error) {
	fresh, err := b.Fresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if !fresh {
		items, err := b.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		return items, nil
	}
	// Later loads come back in id order; return the seed the same way.
	sorted := make([]model.Item, len(seed))
	copy(sorted, seed)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, it := range sorted {
		if err := b.Put(ctx, it); err != nil {
			return nil, fmt.Errorf("seed item %d: %w", it.ID, err)
		}
	}
	return sorted, nil
}
