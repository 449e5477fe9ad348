package model

import (
	"errors"
	"fmt"
	"strings"
)

// ParamType is the input kind of a parameter.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeNumber ParamType = "number"
)

// Valid reports whether t is one of the known parameter types.
func (t ParamType) Valid() bool {
	return t == TypeString || t == TypeNumber
}

// Param describes one labeled, typed field shared by every item.
type Param struct {
	ID   int       `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Type ParamType `json:"type" yaml:"type"`
}

// Schema is the fixed, ordered set of parameter definitions.
// It is immutable once built; pass it to whoever needs it.
type Schema struct {
	params []Param
	index  map[int]int
}

var ErrEmptySchema = errors.New("schema has no parameters")

// NewSchema validates params and returns a Schema that keeps their order.
func NewSchema(params ...Param) (Schema, error) {
	if len(params) == 0 {
		return Schema{}, ErrEmptySchema
	}
	s := Schema{
		params: make([]Param, 0, len(params)),
		index:  make(map[int]int, len(params)),
	}
	for _, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return Schema{}, fmt.Errorf("param %d: empty name", p.ID)
		}
		if p.Type == "" {
			p.Type = TypeString
		}
		if !p.Type.Valid() {
			return Schema{}, fmt.Errorf("param %d: unknown type %q", p.ID, p.Type)
		}
		if _, dup := s.index[p.ID]; dup {
			return Schema{}, fmt.Errorf("param %d: duplicate id", p.ID)
		}
		s.index[p.ID] = len(s.params)
		s.params = append(s.params, p)
	}
	return s, nil
}

// MustSchema is NewSchema for hardcoded tables.
func MustSchema(params ...Param) Schema {
	s, err := NewSchema(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Params returns a copy of the definitions in schema order.
func (s Schema) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Param looks up a definition by id.
func (s Schema) Param(id int) (Param, bool) {
	i, ok := s.index[id]
	if !ok {
		return Param{}, false
	}
	return s.params[i], true
}

func (s Schema) Len() int { return len(s.params) }
