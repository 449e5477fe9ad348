// Package tui is the interactive item grid: an add control followed by one
// card per item, each card switching between a read-only summary and an
// inline form.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/itemed/internal/editor"
	"github.com/idilsaglam/itemed/internal/items"
	"github.com/idilsaglam/itemed/internal/model"
	"github.com/idilsaglam/itemed/internal/ui"
)

// Backend receives every add, save and removal.
type Backend interface {
	Put(ctx context.Context, it model.Item) error
	Delete(ctx context.Context, id int64) error
}

const (
	backendTimeout   = 3 * time.Second
	statusFadeDelay  = 5 * time.Second
	inputPlaceholder = "enter a value"
)

// statusFadeMsg clears the status line unless a newer message replaced it.
type statusFadeMsg struct{ seq int }

type removed struct {
	index int
	item  model.Item
}

type Model struct {
	schema  model.Schema
	store   *items.Store
	backend Backend
	log     *slog.Logger

	editors map[int64]*editor.Editor

	// cursor 0 is the add control; cursor i>0 is item i-1.
	cursor int

	// Inline edit of the card under the cursor.
	editing bool
	inputs  []textinput.Model
	params  []model.Param
	field   int

	// Undo support (single-level)
	undo *removed

	status      string
	statusLevel slog.Level
	statusSeq   int

	keys   KeyMap
	help   help.Model
	width  int
	height int
}

func New(store *items.Store, backend Backend, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{
		schema:  store.Schema(),
		store:   store,
		backend: backend,
		log:     logger,
		editors: map[int64]*editor.Editor{},
		params:  store.Schema().Params(),
		keys:    DefaultKeyMap,
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(store *items.Store, backend Backend, logger *slog.Logger) error {
	p := tea.NewProgram(New(store, backend, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case statusFadeMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	if m.editing {
		return m.forwardToInput(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	per := ui.PerRow(m.width)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-per)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(per)
	case key.Matches(msg, m.keys.Add):
		return m.addItem()
	case key.Matches(msg, m.keys.Open):
		if m.cursor == 0 {
			return m.addItem()
		}
		return m.startEdit()
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Remove):
		return m.removeItem()
	case key.Matches(msg, m.keys.Undo):
		return m.undoRemove()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.saveItem()
	case key.Matches(msg, m.keys.Submit):
		if m.field == len(m.inputs)-1 {
			return m.saveItem()
		}
		return m.focusField(m.field + 1)
	case key.Matches(msg, m.keys.NextField):
		return m.focusField((m.field + 1) % len(m.inputs))
	case key.Matches(msg, m.keys.PrevField):
		return m.focusField((m.field - 1 + len(m.inputs)) % len(m.inputs))
	}
	return m.forwardToInput(msg)
}

// forwardToInput lets the focused text input consume msg and mirrors its
// value into the editor's draft when it changed.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	before := m.inputs[m.field].Value()
	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	if after := m.inputs[m.field].Value(); after != before {
		if ed := m.focusedEditor(); ed != nil {
			ed.SetDraft(m.params[m.field].ID, after)
		}
	}
	return m, cmd
}

// focusField blurs the field being left, which commits its draft.
func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	ed := m.focusedEditor()
	if ed == nil {
		return m, nil
	}
	ed.Blur(m.params[m.field].ID)
	m.inputs[m.field].Blur()
	m.field = i
	return m, m.inputs[m.field].Focus()
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	ed := m.focusedEditor()
	if ed == nil {
		return m, nil
	}
	ed.Edit()
	m.editing = true
	m.field = 0
	m.inputs = make([]textinput.Model, len(m.params))
	for i, p := range m.params {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = inputPlaceholder
		ti.CharLimit = 0
		ti.Width = ui.CardWidth - 8
		ti.SetValue(ed.Draft(p.ID))
		ti.CursorEnd()
		m.inputs[i] = ti
	}
	return m, m.inputs[0].Focus()
}

// saveItem blurs the focused field, as leaving the form would, then
// hands the committed item to the store and backend.
func (m Model) saveItem() (tea.Model, tea.Cmd) {
	ed := m.focusedEditor()
	if ed == nil {
		m.editing = false
		return m, nil
	}
	ed.Blur(m.params[m.field].ID)
	it := ed.Save()
	m.editing = false
	m.inputs = nil
	m.store.Update(it)
	m.log.Info("item saved", "item", it.ID)
	return m.persist("save", it.ID, func(ctx context.Context) error { return m.backend.Put(ctx, it) })
}

func (m Model) addItem() (tea.Model, tea.Cmd) {
	it := m.store.Add()
	m.cursor = m.store.Len()
	m.log.Info("item added", "item", it.ID)
	return m.persist("add", it.ID, func(ctx context.Context) error { return m.backend.Put(ctx, it) })
}

func (m Model) removeItem() (tea.Model, tea.Cmd) {
	if m.cursor == 0 {
		return m, nil
	}
	idx := m.cursor - 1
	ids := m.store.IDs()
	if idx >= len(ids) {
		return m, nil
	}
	id := ids[idx]
	it, _ := m.store.Get(id)
	if !m.store.Remove(id) {
		return m, nil
	}
	delete(m.editors, id)
	m.undo = &removed{index: idx, item: it}
	m.moveCursor(0)
	m.log.Info("item removed", "item", id)
	return m.persist("remove", id, func(ctx context.Context) error { return m.backend.Delete(ctx, id) })
}

func (m Model) undoRemove() (tea.Model, tea.Cmd) {
	if m.undo == nil {
		return m, nil
	}
	u := *m.undo
	m.undo = nil
	if !m.store.Restore(u.index, u.item) {
		return m, nil
	}
	m.cursor = m.store.Index(u.item.ID) + 1
	m.log.Info("item restored", "item", u.item.ID)
	return m.persist("restore", u.item.ID, func(ctx context.Context) error { return m.backend.Put(ctx, u.item) })
}

// persist runs one backend call. Failures never roll back the grid; they
// are logged and shown on the status line.
func (m Model) persist(op string, id int64, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	if m.backend == nil {
		return m, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		m.log.Warn("backend "+op+" failed", "item", id, "err", err)
		return m.setStatus(slog.LevelWarn, fmt.Sprintf("%s #%d not stored: %v", op, id, err))
	}
	return m, nil
}

func (m Model) setStatus(level slog.Level, text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusLevel = level
	seq := m.statusSeq
	return m, tea.Tick(statusFadeDelay, func(time.Time) tea.Msg { return statusFadeMsg{seq: seq} })
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor > m.store.Len() {
		m.cursor = m.store.Len()
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// focusedEditor returns the editor of the card under the cursor, creating
// it on first use.
func (m Model) focusedEditor() *editor.Editor {
	if m.cursor == 0 {
		return nil
	}
	ids := m.store.IDs()
	if m.cursor-1 >= len(ids) {
		return nil
	}
	id := ids[m.cursor-1]
	if ed, ok := m.editors[id]; ok {
		return ed
	}
	it, _ := m.store.Get(id)
	ed := editor.New(m.schema, it)
	m.editors[id] = ed
	return ed
}

func (m Model) View() string {
	th := ui.Current()
	header := fmt.Sprintf("%s   %s %d",
		th.Title.Render("Items"),
		th.Accent.Render("Total"), m.store.Len(),
	)

	list := m.store.Items()
	cards := make([]string, 0, len(list))
	tallest := 0
	for i, it := range list {
		focused := m.cursor == i+1
		var card string
		switch {
		case focused && m.editing:
			card = ui.Card(it.ID, m.formLines(), ui.CardEditing)
		case focused:
			card = ui.Card(it.ID, m.viewLines(it), ui.CardFocused)
		default:
			card = ui.Card(it.ID, m.viewLines(it), ui.CardIdle)
		}
		if h := lipgloss.Height(card); h > tallest {
			tallest = h
		}
		cards = append(cards, card)
	}
	if tallest == 0 {
		tallest = len(m.params) + 3
	}
	cells := append([]string{ui.AddCell(tallest-2, m.cursor == 0)}, cards...)

	footer := m.help.View(browseHelp{m.keys})
	if m.editing {
		footer = m.help.View(editHelp{m.keys})
	}
	if m.status != "" {
		style := th.Muted
		if m.statusLevel >= slog.LevelWarn {
			style = th.Error
		}
		footer = style.Render(m.status)
	}

	return strings.Join([]string{header, "", ui.Grid(cells, m.width), "", footer}, "\n")
}

func (m Model) viewLines(it model.Item) []string {
	rows := make([]editor.Row, 0, len(m.params))
	for _, p := range m.params {
		rows = append(rows, editor.ViewRow(p, it))
	}
	return ui.ViewLines(rows)
}

func (m Model) formLines() []string {
	th := ui.Current()
	lines := make([]string, 0, 2*len(m.inputs))
	for i, in := range m.inputs {
		label := th.Muted.Render(m.params[i].Name)
		if i == m.field {
			label = th.Accent.Render(m.params[i].Name)
		}
		lines = append(lines, label, in.View())
	}
	return lines
}
