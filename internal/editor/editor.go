// Package editor holds the per-item view/edit state machine.
//
// An Editor keeps two tiers of state: the canonical item values, and a
// draft text per field that only exists while Editing. Keystrokes touch the
// draft; Blur moves a draft into the canonical values; Save leaves edit mode.
package editor

import "github.com/idilsaglam/itemed/internal/model"

// Placeholder is shown for parameters with no (or an empty) value.
const Placeholder = "–"

type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

// Row is one rendered parameter line.
type Row struct {
	Param model.Param
	Text  string
	Empty bool
}

type Editor struct {
	schema model.Schema
	item   model.Item
	mode   Mode
	drafts map[int]string
}

func New(schema model.Schema, item model.Item) *Editor {
	return &Editor{schema: schema, item: item.Clone()}
}

func (e *Editor) Mode() Mode    { return e.mode }
func (e *Editor) ID() int64     { return e.item.ID }
func (e *Editor) Editing() bool { return e.mode == Editing }

// Item returns a copy of the canonical values.
func (e *Editor) Item() model.Item { return e.item.Clone() }

// Edit enters edit mode and seeds a draft for every parameter.
func (e *Editor) Edit() {
	if e.mode == Editing {
		return
	}
	e.mode = Editing
	e.drafts = make(map[int]string, e.schema.Len())
	for _, p := range e.schema.Params() {
		v, _ := e.item.Lookup(p.ID)
		e.drafts[p.ID] = v.String()
	}
}

// SetDraft buffers input for a field without committing it.
func (e *Editor) SetDraft(paramID int, text string) {
	if e.mode != Editing {
		return
	}
	if _, ok := e.schema.Param(paramID); !ok {
		return
	}
	e.drafts[paramID] = text
}

func (e *Editor) Draft(paramID int) string { return e.drafts[paramID] }

// Blur commits the draft of a field that lost focus.
func (e *Editor) Blur(paramID int) {
	if e.mode != Editing {
		return
	}
	p, ok := e.schema.Param(paramID)
	if !ok {
		return
	}
	e.Commit(paramID, model.ParseValue(p.Type, e.drafts[paramID]))
}

// Commit writes v into the canonical values for paramID.
func (e *Editor) Commit(paramID int, v model.Value) {
	e.item.Set(paramID, v)
}

// Save leaves edit mode and returns the canonical item. Unblurred drafts
// are dropped.
func (e *Editor) Save() model.Item {
	e.mode = Viewing
	e.drafts = nil
	return e.item.Clone()
}

func (e *Editor) Toggle() {
	if e.mode == Editing {
		e.Save()
		return
	}
	e.Edit()
}

// Rows lists every parameter in schema order with the text to show for
// the current mode.
func (e *Editor) Rows() []Row {
	params := e.schema.Params()
	rows := make([]Row, 0, len(params))
	for _, p := range params {
		if e.mode == Editing {
			d := e.drafts[p.ID]
			rows = append(rows, Row{Param: p, Text: d, Empty: d == ""})
			continue
		}
		rows = append(rows, ViewRow(p, e.item))
	}
	return rows
}

// ViewRow renders one parameter of it for read-only display.
func ViewRow(p model.Param, it model.Item) Row {
	v, ok := it.Lookup(p.ID)
	if !ok || v.IsZero() {
		return Row{Param: p, Text: Placeholder, Empty: true}
	}
	return Row{Param: p, Text: v.String()}
}
