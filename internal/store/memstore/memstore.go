// Package memstore keeps items in process memory only.
package memstore

import (
	"context"
	"sort"

	"github.com/idilsaglam/itemed/internal/model"
)

type Store struct {
	items   map[int64]model.Item
	written bool
}

func New() *Store {
	return &Store{items: map[int64]model.Item{}}
}

func (s *Store) Load(context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Fresh(context.Context) (bool, error) { return !s.written, nil }

func (s *Store) Put(_ context.Context, it model.Item) error {
	s.written = true
	s.items[it.ID] = it.Clone()
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	delete(s.items, id)
	return nil
}

func (s *Store) Close() error { return nil }
