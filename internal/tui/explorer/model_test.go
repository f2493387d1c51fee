package explorer

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/foundation/thing"
)

func newTestModel(t *testing.T, source string, load func() (string, error)) Model {
	t.Helper()
	m := New(Config{
		Title:  "test.thing",
		Source: source,
		Load:   load,
		Engine: thing.NewEngine(thing.Options{Logger: thinglog.Discard()}),
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewShowsTree(t *testing.T) {
	m := newTestModel(t, "1 + 2;", nil)

	view := m.View()
	for _, want := range []string{"thing explorer", "test.thing", "'+'", "'1'", "'2'", "no errors"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_NotReady(t *testing.T) {
	m := New(Config{Source: "a;", Engine: thing.NewEngine(thing.Options{Logger: thinglog.Discard()})})
	if got := m.View(); got != "Loading explorer..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_Diagnostics(t *testing.T) {
	m := newTestModel(t, "a b", nil)

	view := m.View()
	if !strings.Contains(view, "1 error") {
		t.Error("header should show the error count")
	}
	if !strings.Contains(view, "!wrong_token_type") {
		t.Error("tree should highlight the error node")
	}
	if !strings.Contains(view, "Error parsing string (1,3)") {
		t.Error("diagnostics panel should be shown")
	}

	updated, _ := m.Update(keyRunes("d"))
	m = updated.(Model)
	if m.showDiagnostics {
		t.Fatal("d should hide diagnostics")
	}
	if strings.Contains(m.View(), "Error parsing string") {
		t.Error("diagnostics panel should be hidden")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "a;", nil)

	for _, key := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%v should return a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v should quit", key)
		}
	}
}

func TestModel_Reload(t *testing.T) {
	source := "a;"
	m := newTestModel(t, source, func() (string, error) { return source, nil })

	source = "if (x) { y; }"
	_, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatal("r should return a reload command")
	}

	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if !strings.Contains(m.View(), "'if'") {
		t.Error("reloaded tree should contain the if statement")
	}

	updated, cmd = m.Update(SourceChangedMsg{})
	if cmd == nil {
		t.Fatal("SourceChangedMsg should return a reload command")
	}
	_ = updated
}

func TestModel_ReloadError(t *testing.T) {
	m := newTestModel(t, "a;", func() (string, error) { return "", errors.New("file vanished") })

	_, cmd := m.Update(keyRunes("r"))
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if !strings.Contains(m.View(), "file vanished") {
		t.Error("load error should be shown in the header")
	}
}

func TestModel_ReloadDisabled(t *testing.T) {
	m := newTestModel(t, "a;", nil)
	if _, cmd := m.Update(keyRunes("r")); cmd != nil {
		t.Error("r without a loader should be a no-op")
	}
}

func TestTreeLines_Indentation(t *testing.T) {
	m := newTestModel(t, "1 * 2;", nil)

	lines := m.treeLines()
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "  ") || strings.HasPrefix(lines[1], "    ") {
		t.Errorf("statement line = %q, want depth 1", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    ") {
		t.Errorf("operand line = %q, want depth 2", lines[2])
	}
}
