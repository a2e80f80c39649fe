package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestDefaultKeybindingsCoverEveryCommand(t *testing.T) {
	bindings := DefaultKeybindings().Bindings()
	for _, command := range KnownKeybindingCommands() {
		if bindings[command] == "" {
			t.Fatalf("expected a default key for %s", command)
		}
	}
	if got := bindings[KeyCommandNext]; got != "ctrl+n" {
		t.Fatalf("expected ctrl+n for next, got %q", got)
	}
}

func TestNewKeybindingsRemapsOverriddenKeys(t *testing.T) {
	bindings := NewKeybindings(map[string]string{
		KeyCommandNext:    "f2",
		KeyCommandRestart: "  ",
		"ui.unknown":      "f9",
	})
	if got := bindings.KeyFor(KeyCommandNext, ""); got != "f2" {
		t.Fatalf("expected f2, got %q", got)
	}
	if got := bindings.Remap("f2"); got != "ctrl+n" {
		t.Fatalf("expected f2 to remap to ctrl+n, got %q", got)
	}
	if got := bindings.KeyFor(KeyCommandRestart, ""); got != "ctrl+r" {
		t.Fatalf("expected blank override to keep ctrl+r, got %q", got)
	}
	if got := bindings.Remap("f9"); got != "f9" {
		t.Fatalf("expected unknown command to be ignored, got %q", got)
	}
}

func TestNewKeybindingsDropsAmbiguousRemaps(t *testing.T) {
	bindings := NewKeybindings(map[string]string{
		KeyCommandNext: "f5",
		KeyCommandBack: "f5",
	})
	if got := bindings.Remap("f5"); got != "f5" {
		t.Fatalf("expected ambiguous key to stay unmapped, got %q", got)
	}
}

func TestLegacyPrintCommandMapsToExport(t *testing.T) {
	bindings := NewKeybindings(map[string]string{KeyCommandPrint: "ctrl+s"})
	if got := bindings.KeyFor(KeyCommandExport, ""); got != "ctrl+s" {
		t.Fatalf("expected ctrl+s for export, got %q", got)
	}
	if got := bindings.KeyFor(KeyCommandPrint, ""); got != "ctrl+s" {
		t.Fatalf("expected print alias to resolve to export, got %q", got)
	}
}

func TestLoadKeybindingsFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"array.json":  `[{"command":"ui.next","key":"f2"}]`,
		"object.json": `{"ui.next":"f2"}`,
		"keys.toml":   `"ui.next" = "f2"`,
		"keys.yaml":   "ui.next: f2\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		bindings, err := LoadKeybindings(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if got := bindings.KeyFor(KeyCommandNext, ""); got != "f2" {
			t.Fatalf("%s: expected f2, got %q", name, got)
		}
	}
}

func TestLoadKeybindingsMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	bindings, err := LoadKeybindings(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("expected defaults for a missing file: %v", err)
	}
	if got := bindings.KeyFor(KeyCommandQuit, ""); got != "ctrl+c" {
		t.Fatalf("expected ctrl+c, got %q", got)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadKeybindings(bad); err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Fatalf("expected an error naming the file, got %v", err)
	}
}

func TestMatchCommandAcceptsBoundAndDefaultKeys(t *testing.T) {
	m := newTestModel(t, Options{Keybindings: NewKeybindings(map[string]string{KeyCommandNext: "f2"})})
	if !m.matchCommand(tea.KeyPressMsg{Code: tea.KeyF2}, KeyCommandNext) {
		t.Fatalf("expected f2 to match next")
	}
	if m.matchCommand(ctrlKey('p'), KeyCommandNext) {
		t.Fatalf("expected ctrl+p not to match next")
	}
}

func TestDetectKeybindingConflicts(t *testing.T) {
	if conflicts := DetectKeybindingConflicts(DefaultKeybindings()); len(conflicts) != 0 {
		t.Fatalf("expected no conflicts in the defaults, got %+v", conflicts)
	}
	conflicts := DetectKeybindingConflicts(NewKeybindings(map[string]string{KeyCommandExport: "ctrl+n"}))
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %+v", conflicts)
	}
	got := conflicts[0]
	if got.Key != "ctrl+n" || got.Scope != keyScopeSummary || len(got.Commands) != 2 {
		t.Fatalf("unexpected conflict %+v", got)
	}
	if msg := got.ToastMessage(); msg != "keybinding conflict: ctrl+n in summary (ui.export, ui.next)" {
		t.Fatalf("unexpected toast %q", msg)
	}
}

func TestScoreAndToggleKeysMayShareAcrossSteps(t *testing.T) {
	conflicts := DetectKeybindingConflicts(NewKeybindings(map[string]string{KeyCommandAddDimension: "right"}))
	if len(conflicts) != 0 {
		t.Fatalf("expected keys on different steps to coexist, got %+v", conflicts)
	}
}

func TestConflictsQueueAsStartupToasts(t *testing.T) {
	m := newTestModel(t, Options{Keybindings: NewKeybindings(map[string]string{KeyCommandRestart: "tab"})})
	if m.toasts.current.level != toastLevelError || m.toasts.current.text != "keybinding conflict: tab in summary (ui.focusNext, ui.restart)" {
		t.Fatalf("expected conflict toast, got %v %q", m.toasts.current.level, m.toasts.current.text)
	}
}
