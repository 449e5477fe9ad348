package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSchema_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params []Param
	}{
		{name: "empty", params: nil},
		{name: "duplicate id", params: []Param{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}},
		{name: "blank name", params: []Param{{ID: 1, Name: "  "}}},
		{name: "unknown type", params: []Param{{ID: 1, Name: "a", Type: "date"}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewSchema(tt.params...); err == nil {
				t.Fatalf("expected error for %v", tt.params)
			}
		})
	}
}

func TestSchema_KeepsOrderAndDefaultsType(t *testing.T) {
	s := MustSchema(Param{ID: 3, Name: "c"}, Param{ID: 1, Name: "a", Type: TypeNumber})
	got := s.Params()
	want := []Param{{ID: 3, Name: "c", Type: TypeString}, {ID: 1, Name: "a", Type: TypeNumber}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params (-want +got):\n%s", diff)
	}

	got[0].Name = "mutated"
	if p, _ := s.Param(3); p.Name != "c" {
		t.Fatalf("schema leaked its backing slice: %q", p.Name)
	}
	if _, ok := s.Param(2); ok {
		t.Fatalf("expected missing param 2")
	}
}

func TestItemSet_InsertsWhenAbsent(t *testing.T) {
	it := Item{ID: 1, Values: []ParamValue{{ParamID: 1, Value: Text("a")}, {ParamID: 2, Value: Text("b")}}}
	it.Set(3, Text("c"))

	want := []ParamValue{{1, Text("a")}, {2, Text("b")}, {3, Text("c")}}
	if diff := cmp.Diff(want, it.Values); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestItemSet_ReplacesInPlace(t *testing.T) {
	it := Item{ID: 1, Values: []ParamValue{{1, Text("Брюки")}, {2, Text("Casual")}, {3, Text("Oversize")}}}
	it.Set(2, Text("Formal"))

	want := []ParamValue{{1, Text("Брюки")}, {2, Text("Formal")}, {3, Text("Oversize")}}
	if diff := cmp.Diff(want, it.Values); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestItemClone_IsIndependent(t *testing.T) {
	it := Item{ID: 7, Values: []ParamValue{{1, Text("x")}}}
	c := it.Clone()
	c.Set(1, Text("y"))
	if v, _ := it.Lookup(1); v.String() != "x" {
		t.Fatalf("clone shares storage, original now %q", v)
	}
}

func TestItemDedup_KeepsFirst(t *testing.T) {
	it := Item{Values: []ParamValue{{1, Text("a")}, {2, Text("b")}, {1, Text("c")}}}
	it.Dedup()
	want := []ParamValue{{1, Text("a")}, {2, Text("b")}}
	if diff := cmp.Diff(want, it.Values); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  ParamType
		in   string
		want Value
	}{
		{TypeString, "42", Text("42")},
		{TypeNumber, "42", Number(42)},
		{TypeNumber, " 1.5 ", Number(1.5)},
		{TypeNumber, "wide", Text("wide")},
		{TypeNumber, "", Text("")},
		{TypeNumber, "NaN", Text("NaN")},
		{TypeNumber, "Inf", Text("Inf")},
		{TypeNumber, "-inf", Text("-inf")},
		{TypeNumber, "infinity", Text("infinity")},
		{TypeNumber, "1e400", Text("1e400")},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.typ, tt.in); !got.Equal(tt.want) {
			t.Fatalf("ParseValue(%s, %q) = %#v, want %#v", tt.typ, tt.in, got, tt.want)
		}
	}
}

func TestParseValue_NonFiniteStillEncodes(t *testing.T) {
	for _, in := range []string{"NaN", "+Inf", "infinity"} {
		v := ParseValue(TypeNumber, in)
		if v.IsNumber() {
			t.Fatalf("ParseValue(number, %q) should stay text", in)
		}
		if !v.Equal(v) {
			t.Fatalf("%q not equal to itself", in)
		}
		if _, err := json.Marshal(v); err != nil {
			t.Fatalf("marshal %q: %v", in, err)
		}
	}
	if _, err := ValueOf(math.NaN()); err == nil {
		t.Fatalf("expected error for NaN from config")
	}
}

func TestValueJSON_KeepsKind(t *testing.T) {
	it := Item{ID: 1, Values: []ParamValue{{1, Text("12")}, {2, Number(12)}}}
	b, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"id":1,"paramValues":[{"paramId":1,"value":"12"},{"paramId":2,"value":12}]}`; string(b) != want {
		t.Fatalf("json = %s\nwant  %s", b, want)
	}

	var back Item
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(it, back); diff != "" {
		t.Fatalf("item (-want +got):\n%s", diff)
	}
}

func TestValueString_FormatsNumbers(t *testing.T) {
	if got := Number(3).String(); got != "3" {
		t.Fatalf("got %q", got)
	}
	if got := Number(0.25).String(); got != "0.25" {
		t.Fatalf("got %q", got)
	}
	if !Text("").IsZero() || Number(0).IsZero() {
		t.Fatalf("IsZero should only hold for empty text")
	}
}
