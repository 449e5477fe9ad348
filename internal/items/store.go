// Package items keeps the ordered item collection and mediates add/remove.
package items

import (
	"time"

	"github.com/idilsaglam/itemed/internal/model"
)

// Store owns the item records. It is not safe for concurrent use; the TUI
// mutates it from a single event loop.
type Store struct {
	schema model.Schema
	items  []model.Item
	now    func() time.Time
	lastID int64
}

type Option func(*Store)

// WithClock overrides the time source used for new ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(schema model.Schema, opts ...Option) *Store {
	s := &Store{schema: schema, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Schema() model.Schema { return s.schema }

// Load replaces the collection. Repeated ids are dropped, first one wins.
func (s *Store) Load(items []model.Item) {
	s.items = make([]model.Item, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		c := it.Clone()
		c.Dedup()
		s.items = append(s.items, c)
		s.observe(it.ID)
	}
}

// Add appends a new item with one empty value per parameter definition.
func (s *Store) Add() model.Item {
	params := s.schema.Params()
	it := model.Item{
		ID:     s.nextID(),
		Values: make([]model.ParamValue, 0, len(params)),
	}
	for _, p := range params {
		it.Values = append(it.Values, model.ParamValue{ParamID: p.ID, Value: model.Text("")})
	}
	s.items = append(s.items, it)
	return it.Clone()
}

// Remove drops the item with the given id. Unknown ids are ignored.
func (s *Store) Remove(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Update replaces the stored record with the same id.
func (s *Store) Update(it model.Item) bool {
	i := s.indexOf(it.ID)
	if i < 0 {
		return false
	}
	c := it.Clone()
	c.Dedup()
	s.items[i] = c
	return true
}

// Restore puts a previously removed item back at index (clamped).
func (s *Store) Restore(index int, it model.Item) bool {
	if s.indexOf(it.ID) >= 0 {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items, model.Item{})
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = it.Clone()
	s.observe(it.ID)
	return true
}

func (s *Store) Get(id int64) (model.Item, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i].Clone(), true
}

// Index returns the position of id, or -1.
func (s *Store) Index(id int64) int { return s.indexOf(id) }

// Items returns copies of all records in collection order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

func (s *Store) IDs() []int64 {
	out := make([]int64, len(s.items))
	for i, it := range s.items {
		out[i] = it.ID
	}
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID hands out millisecond timestamps, bumped past anything seen.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) observe(id int64) {
	if id > s.lastID {
		s.lastID = id
	}
}
