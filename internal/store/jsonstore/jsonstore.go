package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/idilsaglam/itemed/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every write rewrites the whole file; fine for a local single-user editor.

type Store struct {
	path string
}

// New stores items in path. Relative paths resolve against the working
// directory at call time.
func New(path string) *Store { return &Store{path: path} }

func (s *Store) dataPath() (string, error) {
	if filepath.IsAbs(s.path) {
		return s.path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, s.path), nil
}

func (s *Store) Load(context.Context) ([]model.Item, error) {
	p, err := s.dataPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Fresh is true until the data file exists.
func (s *Store) Fresh(context.Context) (bool, error) {
	p, err := s.dataPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return false, nil
}

func (s *Store) Put(ctx context.Context, it model.Item) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range items {
		if items[i].ID == it.ID {
			items[i] = it
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, it)
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}
	return s.save(items)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if len(out) == len(items) {
		return nil
	}
	return s.save(out)
}

func (s *Store) Close() error { return nil }

func (s *Store) save(items []model.Item) error {
	p, err := s.dataPath()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
