// Package storetest keeps the test suite every backend must pass.
package storetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idilsaglam/itemed/internal/model"
)

// Backend mirrors store.Backend; store imports the backends, so the suite
// cannot import it back.
type Backend interface {
	Load(ctx context.Context) ([]model.Item, error)
	Fresh(ctx context.Context) (bool, error)
	Put(ctx context.Context, it model.Item) error
	Delete(ctx context.Context, id int64) error
}

// TestBackend runs the shared contract against an empty backend.
func TestBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	items, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty backend, got %d items", len(items))
	}
	if fresh, err := b.Fresh(ctx); err != nil || !fresh {
		t.Fatalf("new backend should be fresh: fresh=%v err=%v", fresh, err)
	}

	first := model.Item{ID: 1, Values: []model.ParamValue{
		{ParamID: 1, Value: model.Text("Брюки")},
		{ParamID: 2, Value: model.Text("Casual")},
		{ParamID: 3, Value: model.Text("Oversize")},
	}}
	second := model.Item{ID: 1_700_000_000_000, Values: []model.ParamValue{
		{ParamID: 1, Value: model.Text("")},
		{ParamID: 4, Value: model.Number(98.5)},
	}}
	third := model.Item{ID: 1_700_000_000_001, Values: []model.ParamValue{}}

	// Out of order on purpose; Load sorts by id.
	for _, it := range []model.Item{second, first, third} {
		if err := b.Put(ctx, it); err != nil {
			t.Fatalf("put %d: %v", it.ID, err)
		}
	}
	mustLoad(t, b, []model.Item{first, second, third})
	if fresh, err := b.Fresh(ctx); err != nil || fresh {
		t.Fatalf("backend should not be fresh after a put: fresh=%v err=%v", fresh, err)
	}

	first.Set(3, model.Text("Slim"))
	if err := b.Put(ctx, first); err != nil {
		t.Fatalf("put updated: %v", err)
	}
	mustLoad(t, b, []model.Item{first, second, third})

	if err := b.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.Delete(ctx, 42); err != nil {
		t.Fatalf("delete of unknown id should not fail: %v", err)
	}
	mustLoad(t, b, []model.Item{first, third})

	for _, it := range []model.Item{first, third} {
		if err := b.Delete(ctx, it.ID); err != nil {
			t.Fatalf("delete %d: %v", it.ID, err)
		}
	}
	mustLoad(t, b, []model.Item{})
	if fresh, err := b.Fresh(ctx); err != nil || fresh {
		t.Fatalf("emptied backend must not look fresh: fresh=%v err=%v", fresh, err)
	}
}

func mustLoad(t *testing.T, b Backend, want []model.Item) {
	t.Helper()
	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got, emptyValuesEqual); diff != "" {
		t.Fatalf("items (-want +got):\n%s", diff)
	}
}

// Backends may hand back nil or an empty slice for an item with no values.
var emptyValuesEqual = cmp.Comparer(func(a, b []model.ParamValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ParamID != b[i].ParamID || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
})
