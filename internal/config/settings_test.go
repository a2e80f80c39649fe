package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	if cfg.MicroActionPolicy() != "strict" || cfg.ExportFormat() != "markdown" || cfg.ChartFormat() != "svg" {
		t.Fatalf("unexpected accessors: %q %q %q", cfg.MicroActionPolicy(), cfg.ExportFormat(), cfg.ChartFormat())
	}
	if cfg.DefaultDimensions() != nil {
		t.Fatalf("expected no custom dimensions, got %v", cfg.DefaultDimensions())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".lifewheel")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte(`[wizard]
micro_action = "relaxed"
dimensions = ["Work", "Home", "Body", "Money", "Friends", "Play", "Work"]

[export]
format = "md"
chart = "png"
dir = "out"

[logging]
level = "debug"
`)
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MicroActionPolicy() != "relaxed" {
		t.Fatalf("unexpected policy: %q", cfg.MicroActionPolicy())
	}
	want := []string{"Work", "Home", "Body", "Money", "Friends", "Play"}
	if diff := cmp.Diff(want, cfg.DefaultDimensions()); diff != "" {
		t.Fatalf("unexpected dimensions (-want +got):\n%s", diff)
	}
	if cfg.ExportFormat() != "markdown" || cfg.ChartFormat() != "png" || cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected export settings: %+v", cfg.Export)
	}
	dir, err := cfg.ResolveExportDir()
	if err != nil {
		t.Fatalf("ResolveExportDir: %v", err)
	}
	if want := filepath.Join(dataDir, "out"); dir != want {
		t.Fatalf("unexpected export dir: got=%q want=%q", dir, want)
	}
	if cfg.UI.Input.ReflectionMaxHeight != 8 {
		t.Fatalf("expected defaults kept for unset keys, got %+v", cfg.UI.Input)
	}
}

func TestLoadFromRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[wizard\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read config error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	t.Setenv("LIFEWHEEL_LOG_LEVEL", "warn")
	t.Setenv("LIFEWHEEL_EXPORT_FORMAT", "yaml")
	t.Setenv("LIFEWHEEL_EXPORT_DIR", "/tmp/wheel")
	t.Setenv("LIFEWHEEL_MICRO_ACTION", "relaxed")
	t.Setenv("LIFEWHEEL_DISABLE_OSC52", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel() != "warn" || cfg.ExportFormat() != "yaml" || cfg.MicroActionPolicy() != "relaxed" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if dir, _ := cfg.ResolveExportDir(); dir != "/tmp/wheel" {
		t.Fatalf("unexpected export dir %q", dir)
	}
	if !cfg.Clipboard.DisableOSC52 {
		t.Fatalf("expected osc52 disabled")
	}
}

func TestEnvOverrideParseError(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	t.Setenv("LIFEWHEEL_DISABLE_OSC52", "not-a-bool")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Export.Format = "docx"
	cfg.Export.Chart = "gif"
	cfg.Wizard.MicroAction = "loose"
	cfg.Wizard.Dimensions = []string{"a", "b"}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"docx", "gif", "loose", "got 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
	if cfg.ExportFormat() != "markdown" || cfg.ChartFormat() != "svg" {
		t.Fatalf("expected fallbacks, got %q %q", cfg.ExportFormat(), cfg.ChartFormat())
	}
}

func TestResolveKeybindingsPath(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	cfg := Config{}
	path, err := cfg.ResolveKeybindingsPath()
	if err != nil {
		t.Fatalf("ResolveKeybindingsPath default: %v", err)
	}
	if want := filepath.Join(home, ".lifewheel", "keybindings.json"); path != want {
		t.Fatalf("unexpected default path: got=%q want=%q", path, want)
	}

	cfg.UI.Keybindings.Path = "~/keys.json"
	path, err = cfg.ResolveKeybindingsPath()
	if err != nil {
		t.Fatalf("ResolveKeybindingsPath home: %v", err)
	}
	if want := filepath.Join(home, "keys.json"); path != want {
		t.Fatalf("unexpected home path: got=%q want=%q", path, want)
	}
}

func TestReflectionHeights(t *testing.T) {
	cfg := Config{}
	cfg.UI.Input.ReflectionMinHeight = 10
	cfg.UI.Input.ReflectionMaxHeight = 4
	minHeight, maxHeight := cfg.ReflectionHeights()
	if minHeight != 10 || maxHeight != 10 {
		t.Fatalf("unexpected heights: %d %d", minHeight, maxHeight)
	}
}
