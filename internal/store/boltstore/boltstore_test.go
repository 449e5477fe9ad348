package boltstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/itemed/internal/model"
	"github.com/idilsaglam/itemed/internal/store/boltstore"
	"github.com/idilsaglam/itemed/internal/store/storetest"
)

func TestBoltStore(t *testing.T) {
	s, err := boltstore.Open(filepath.Join(t.TempDir(), "items.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()
	storetest.TestBackend(t, s)
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "items.db")
	ctx := context.Background()

	s, err := boltstore.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, model.Item{ID: 3, Values: []model.ParamValue{{ParamID: 1, Value: model.Text("x")}}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = boltstore.Open(p)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()
	items, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 || items[0].ID != 3 {
		t.Fatalf("items = %+v", items)
	}
}
