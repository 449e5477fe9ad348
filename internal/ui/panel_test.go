package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/itemed/internal/editor"
	"github.com/idilsaglam/itemed/internal/model"
)

func plainOutput(t *testing.T) {
	t.Helper()
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })
	SetTheme("classic")
}

func TestCard_ShowsRowsAndPlaceholder(t *testing.T) {
	plainOutput(t)

	schema := model.MustSchema(model.Param{ID: 1, Name: "Наименование"}, model.Param{ID: 2, Name: "Длина"})
	e := editor.New(schema, model.Item{ID: 7, Values: []model.ParamValue{{ParamID: 1, Value: model.Text("Брюки")}}})
	out := Card(7, ViewLines(e.Rows()), CardIdle)

	for _, want := range []string{"#7", "Наименование: Брюки", "Длина: –"} {
		if !strings.Contains(out, want) {
			t.Fatalf("card missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w != CardWidth {
			t.Fatalf("card line width %d, want %d: %q", w, CardWidth, line)
		}
	}
}

func TestViewLines_TruncatesLongValues(t *testing.T) {
	plainOutput(t)

	rows := []editor.Row{{Param: model.Param{ID: 1, Name: "Name"}, Text: strings.Repeat("x", 80)}}
	line := ViewLines(rows)[0]
	if w := ansi.StringWidth(line); w > CardWidth-4 {
		t.Fatalf("line not truncated: width %d", w)
	}
	if !strings.HasSuffix(line, "…") {
		t.Fatalf("expected ellipsis, got %q", line)
	}
}

func TestGrid_WrapsByWidth(t *testing.T) {
	plainOutput(t)

	cells := []string{AddCell(3, true), Card(1, nil, CardIdle), Card(2, nil, CardIdle)}
	narrow := Grid(cells, CardWidth)
	wide := Grid(cells, 3*(CardWidth+1))

	if got := strings.Count(narrow, "#"); got != 2 {
		t.Fatalf("expected both cards rendered, got %d", got)
	}
	if lipgloss.Height(narrow) <= lipgloss.Height(wide) {
		t.Fatalf("narrow grid should stack cells: narrow=%d wide=%d", lipgloss.Height(narrow), lipgloss.Height(wide))
	}
	if PerRow(10) != 1 || PerRow(3*(CardWidth+1)) != 3 {
		t.Fatalf("PerRow mismatch")
	}
}

func TestSetTheme_UnknownFallsBackToClassic(t *testing.T) {
	SetTheme("mono")
	if Current().Name != "mono" {
		t.Fatalf("expected mono")
	}
	SetTheme("sepia")
	if Current().Name != "classic" {
		t.Fatalf("expected classic fallback, got %q", Current().Name)
	}
}

func TestOKFail_WriteSymbols(t *testing.T) {
	plainOutput(t)

	var b strings.Builder
	OK(&b, "saved")
	Fail(&b, "boom")
	if got := b.String(); got != "✔ saved\n✖ boom\n" {
		t.Fatalf("got %q", got)
	}
}
