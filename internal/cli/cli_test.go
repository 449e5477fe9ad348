package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idilsaglam/itemed/internal/model"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// writeConfig points the json backend into a temp dir and returns the
// leading flags every test invocation uses.
func writeConfig(t *testing.T, body string) []string {
	t.Helper()
	dir := t.TempDir()
	body = strings.ReplaceAll(body, "$DIR", dir)
	p := filepath.Join(dir, "itemed.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return []string{"--config", p, "--no-color"}
}

const defaultBody = "backend: {kind: json, path: $DIR/items.json}\n"

func mustRun(t *testing.T, base []string, args ...string) string {
	t.Helper()
	stdout, stderr, err := runCLI(t, append(append([]string{}, base...), args...))
	if err != nil {
		t.Fatalf("itemed %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	return string(stdout)
}

func listJSON(t *testing.T, base []string) []model.Item {
	t.Helper()
	var got []model.Item
	out := mustRun(t, base, "ls", "--json")
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode ls --json: %v\n%s", err, out)
	}
	return got
}

func TestLs_SeedsSampleItemOnFirstRun(t *testing.T) {
	base := writeConfig(t, defaultBody)

	out := mustRun(t, base, "ls")
	for _, want := range []string{"Total 1", "#1", "Наименование: Брюки", "Назначение: Casual", "Длина: Oversize"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ls output missing %q:\n%s", want, out)
		}
	}
}

func TestSet_EditsOneParameter(t *testing.T) {
	base := writeConfig(t, defaultBody)

	mustRun(t, base, "set", "1", "3", "Slim")

	want := []model.Item{{ID: 1, Values: []model.ParamValue{
		{ParamID: 1, Value: model.Text("Брюки")},
		{ParamID: 2, Value: model.Text("Casual")},
		{ParamID: 3, Value: model.Text("Slim")},
	}}}
	if diff := cmp.Diff(want, listJSON(t, base)); diff != "" {
		t.Fatalf("items (-want +got):\n%s", diff)
	}
}

func TestAdd_AppendsEmptyItemAndAppliesSets(t *testing.T) {
	base := writeConfig(t, defaultBody)

	out := mustRun(t, base, "add")
	if !strings.Contains(out, "added #") {
		t.Fatalf("unexpected output: %q", out)
	}
	mustRun(t, base, "add", "--set", "1=Юбка", "--set", "3=Midi")

	got := listJSON(t, base)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].ID != 1 || !(got[1].ID < got[2].ID) {
		t.Fatalf("items out of order: %d %d %d", got[0].ID, got[1].ID, got[2].ID)
	}
	for _, pv := range got[1].Values {
		if !pv.Value.IsZero() {
			t.Fatalf("plain add should seed empty values, got %+v", got[1].Values)
		}
	}
	wantLast := []model.ParamValue{
		{ParamID: 1, Value: model.Text("Юбка")},
		{ParamID: 2, Value: model.Text("")},
		{ParamID: 3, Value: model.Text("Midi")},
	}
	if diff := cmp.Diff(wantLast, got[2].Values); diff != "" {
		t.Fatalf("last item (-want +got):\n%s", diff)
	}
}

func TestRm_UnknownIDIsNoop(t *testing.T) {
	base := writeConfig(t, defaultBody)
	before := listJSON(t, base)

	out := mustRun(t, base, "rm", "42")
	if !strings.Contains(out, "nothing to remove") {
		t.Fatalf("unexpected output: %q", out)
	}
	if diff := cmp.Diff(before, listJSON(t, base)); diff != "" {
		t.Fatalf("items changed (-before +after):\n%s", diff)
	}
}

func TestRm_RemovesByID(t *testing.T) {
	base := writeConfig(t, defaultBody)
	mustRun(t, base, "rm", "1")

	// The sample item is only seeded into a fresh backend.
	if got := listJSON(t, base); len(got) != 0 {
		t.Fatalf("expected no items after removing the last one, got %+v", got)
	}
}

func TestRm_KeepsOtherItems(t *testing.T) {
	base := writeConfig(t, defaultBody)
	mustRun(t, base, "add")
	mustRun(t, base, "rm", "1")

	got := listJSON(t, base)
	if len(got) != 1 || got[0].ID == 1 {
		t.Fatalf("expected only the added item, got %+v", got)
	}
}

func TestParams_PrintsSchema(t *testing.T) {
	base := writeConfig(t, defaultBody+`
params:
  - {id: 1, name: Title}
  - {id: 2, name: Weight, type: number}
`)
	out := mustRun(t, base, "params")
	for _, want := range []string{"Title", "Weight", "number"} {
		if !strings.Contains(out, want) {
			t.Fatalf("params output missing %q:\n%s", want, out)
		}
	}
}

func TestNumberParam_StoredAsNumber(t *testing.T) {
	base := writeConfig(t, defaultBody+`
params:
  - {id: 1, name: Title}
  - {id: 2, name: Weight, type: number}
`)
	mustRun(t, base, "add", "--set", "2=12.5")

	got := listJSON(t, base)
	if len(got) != 1 {
		t.Fatalf("expected one item, got %d", len(got))
	}
	v, _ := got[0].Lookup(2)
	if f, ok := v.Float(); !ok || f != 12.5 {
		t.Fatalf("expected number 12.5, got %#v", v)
	}
}

func TestErrors(t *testing.T) {
	base := writeConfig(t, defaultBody)

	tests := []struct {
		name string
		args []string
	}{
		{name: "rm without id", args: []string{"rm"}},
		{name: "rm non-numeric", args: []string{"rm", "abc"}},
		{name: "set unknown item", args: []string{"set", "99", "1", "x"}},
		{name: "set unknown param", args: []string{"set", "1", "9", "x"}},
		{name: "add bad assignment", args: []string{"add", "--set", "nope"}},
		{name: "add unknown param", args: []string{"add", "--set", "9=x"}},
		{name: "unknown subcommand", args: []string{"wat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, append(append([]string{}, base...), tt.args...)); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

func TestBadConfig_Fails(t *testing.T) {
	base := writeConfig(t, "backend: {kind: redis}\n")
	if _, _, err := runCLI(t, append(base, "ls")); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestLogFile_ReceivesRecords(t *testing.T) {
	base := writeConfig(t, defaultBody)
	logPath := filepath.Join(t.TempDir(), "itemed.log")
	mustRun(t, append(base, "--log-file", logPath, "--log-level", "debug"), "add")

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"session opened", "item added"} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("log missing %q:\n%s", want, b)
		}
	}
}

func TestLogFile_ClosedWhenCommandFails(t *testing.T) {
	base := writeConfig(t, defaultBody)
	logPath := filepath.Join(t.TempDir(), "itemed.log")

	cmd, app := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(append([]string{}, base...), "--log-file", logPath, "set", "99", "1", "x"))
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown item")
	}
	if app.logSink == nil {
		t.Fatalf("log file was never opened")
	}
	if err := app.logSink.Close(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("log file left open after failure: second close returned %v", err)
	}
}
