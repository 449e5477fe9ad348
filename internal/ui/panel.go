package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/itemed/internal/editor"
)

// CardWidth is the outer width of every cell in the grid.
const CardWidth = 34

type CardState int

const (
	CardIdle CardState = iota
	CardFocused
	CardEditing
)

// Panel frames lines with the current theme's border.
func Panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// ViewLines renders read-only parameter rows as "Name: value" lines.
func ViewLines(rows []editor.Row) []string {
	inner := CardWidth - 4
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		val := current.Value.Render(r.Text)
		if r.Empty {
			val = current.Muted.Render(r.Text)
		}
		out = append(out, ansi.Truncate(r.Param.Name+": "+val, inner, "…"))
	}
	return out
}

// Card frames body as one grid cell with a header naming the item.
func Card(id int64, body []string, state CardState) string {
	header := current.Muted.Render(fmt.Sprintf("#%d", id))
	switch state {
	case CardEditing:
		header += "  " + current.Accent.Render("editing")
	case CardFocused:
		header += "  " + current.Muted.Render(current.SymEdit+" e   "+current.SymRemove+" x")
	}
	lines := append([]string{header}, body...)
	return frame(lines, state)
}

// AddCell is the "+" control rendered before the item cards.
func AddCell(height int, focused bool) string {
	state := CardIdle
	if focused {
		state = CardFocused
	}
	if height < 3 {
		height = 3
	}
	lines := make([]string, height)
	mid := height / 2
	lines[mid] = lipgloss.PlaceHorizontal(CardWidth-4, lipgloss.Center, current.Title.Render(current.SymAdd))
	return frame(lines, state)
}

func frame(lines []string, state CardState) string {
	color := current.BorderColor
	switch state {
	case CardFocused:
		color = current.FocusColor
	case CardEditing:
		color = current.EditingColor
	}
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(color).
		Padding(0, 1).
		Width(CardWidth - 2).
		Render(strings.Join(lines, "\n"))
}

// Grid lays cells out left to right, wrapping at width.
func Grid(cells []string, width int) string {
	perRow := width / (CardWidth + 1)
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for start := 0; start < len(cells); start += perRow {
		end := start + perRow
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]string, 0, 2*(end-start))
		for i, c := range cells[start:end] {
			if i > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// PerRow reports how many cells Grid puts on one line at width.
func PerRow(width int) int {
	n := width / (CardWidth + 1)
	if n < 1 {
		return 1
	}
	return n
}
