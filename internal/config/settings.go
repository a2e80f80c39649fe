package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultLogLevel     = "info"
	defaultExportFormat = "markdown"
	defaultChartFormat  = "svg"
	defaultMicroAction  = "strict"
)

var exportFormats = []string{"markdown", "json", "toml", "yaml"}

var chartFormats = []string{"svg", "png", "none"}

type Config struct {
	Wizard    WizardConfig    `toml:"wizard" json:"wizard"`
	Logging   LoggingConfig   `toml:"logging" json:"logging"`
	Export    ExportConfig    `toml:"export" json:"export"`
	Clipboard ClipboardConfig `toml:"clipboard" json:"clipboard"`
	UI        UIConfig        `toml:"ui" json:"ui"`
}

type WizardConfig struct {
	// MicroAction is "strict" (what, when and both checks) or "relaxed"
	// (what and the first check).
	MicroAction string   `toml:"micro_action" json:"micro_action"`
	Dimensions  []string `toml:"dimensions" json:"dimensions,omitempty"`
}

type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
}

type ExportConfig struct {
	Dir    string `toml:"dir" json:"dir,omitempty"`
	Format string `toml:"format" json:"format"`
	Chart  string `toml:"chart" json:"chart"`
}

type ClipboardConfig struct {
	DisableOSC52 bool `toml:"disable_osc52" json:"disable_osc52"`
}

type UIConfig struct {
	Keybindings UIKeybindingsConfig `toml:"keybindings" json:"keybindings"`
	Input       UIInputConfig       `toml:"input" json:"input"`
}

type UIKeybindingsConfig struct {
	Path string `toml:"path" json:"path,omitempty"`
}

type UIInputConfig struct {
	ReflectionMinHeight int `toml:"reflection_min_height" json:"reflection_min_height"`
	ReflectionMaxHeight int `toml:"reflection_max_height" json:"reflection_max_height"`
}

// envOverrides are applied on top of the file settings.
type envOverrides struct {
	LogLevel     string `env:"LIFEWHEEL_LOG_LEVEL"`
	ExportDir    string `env:"LIFEWHEEL_EXPORT_DIR"`
	ExportFormat string `env:"LIFEWHEEL_EXPORT_FORMAT"`
	ExportChart  string `env:"LIFEWHEEL_EXPORT_CHART"`
	MicroAction  string `env:"LIFEWHEEL_MICRO_ACTION"`
	DisableOSC52 bool   `env:"LIFEWHEEL_DISABLE_OSC52"`
}

func Default() Config {
	return Config{
		Wizard: WizardConfig{
			MicroAction: defaultMicroAction,
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
		Export: ExportConfig{
			Format: defaultExportFormat,
			Chart:  defaultChartFormat,
		},
		UI: UIConfig{
			Input: UIInputConfig{
				ReflectionMinHeight: 3,
				ReflectionMaxHeight: 8,
			},
		},
	}
}

// Load reads the settings file at its default location and applies
// environment overrides.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from path. A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if v := strings.TrimSpace(overrides.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(overrides.ExportDir); v != "" {
		cfg.Export.Dir = v
	}
	if v := strings.TrimSpace(overrides.ExportFormat); v != "" {
		cfg.Export.Format = v
	}
	if v := strings.TrimSpace(overrides.ExportChart); v != "" {
		cfg.Export.Chart = v
	}
	if v := strings.TrimSpace(overrides.MicroAction); v != "" {
		cfg.Wizard.MicroAction = v
	}
	if overrides.DisableOSC52 {
		cfg.Clipboard.DisableOSC52 = true
	}
	return nil
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) MicroActionPolicy() string {
	policy := strings.ToLower(strings.TrimSpace(c.Wizard.MicroAction))
	if policy == "" {
		return defaultMicroAction
	}
	return policy
}

// DefaultDimensions returns the configured starting labels, or nil to use the
// built-in wheel.
func (c Config) DefaultDimensions() []string {
	return normalizedList(c.Wizard.Dimensions)
}

// ExportFormat returns a supported document format, normalizing "md".
func (c Config) ExportFormat() string {
	format, ok := normalizeExportFormat(c.Export.Format)
	if !ok {
		return defaultExportFormat
	}
	return format
}

func normalizeExportFormat(raw string) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "md":
		format = "markdown"
	case "yml":
		format = "yaml"
	}
	return format, contains(exportFormats, format)
}

func (c Config) ChartFormat() string {
	format := strings.ToLower(strings.TrimSpace(c.Export.Chart))
	if !contains(chartFormats, format) {
		return defaultChartFormat
	}
	return format
}

func (c Config) ResolveExportDir() (string, error) {
	dir := strings.TrimSpace(c.Export.Dir)
	if dir == "" {
		return ReportsDir()
	}
	return resolveConfigPath(dir)
}

func (c Config) ResolveKeybindingsPath() (string, error) {
	path := strings.TrimSpace(c.UI.Keybindings.Path)
	if path == "" {
		return KeybindingsPath()
	}
	return resolveConfigPath(path)
}

func (c Config) ReflectionHeights() (minHeight, maxHeight int) {
	minHeight = c.UI.Input.ReflectionMinHeight
	maxHeight = c.UI.Input.ReflectionMaxHeight
	if minHeight <= 0 {
		minHeight = 3
	}
	if maxHeight <= 0 {
		maxHeight = 8
	}
	if maxHeight < minHeight {
		maxHeight = minHeight
	}
	return minHeight, maxHeight
}

// Validate reports settings that would be silently replaced by defaults.
func (c Config) Validate() error {
	var errs []error
	if _, ok := normalizeExportFormat(c.Export.Format); !ok && strings.TrimSpace(c.Export.Format) != "" {
		errs = append(errs, fmt.Errorf("unsupported export format %q", c.Export.Format))
	}
	if chart := strings.ToLower(strings.TrimSpace(c.Export.Chart)); chart != "" && !contains(chartFormats, chart) {
		errs = append(errs, fmt.Errorf("unsupported chart format %q", c.Export.Chart))
	}
	switch c.MicroActionPolicy() {
	case "strict", "relaxed":
	default:
		errs = append(errs, fmt.Errorf("unknown micro action policy %q", c.Wizard.MicroAction))
	}
	if n := len(c.DefaultDimensions()); n != 0 && (n < 6 || n > 10) {
		errs = append(errs, fmt.Errorf("wizard.dimensions needs 6 to 10 labels, got %d", n))
	}
	return errors.Join(errs...)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}

func normalizedList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
