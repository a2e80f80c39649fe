package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"lifewheel/internal/app"
	"lifewheel/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath      string            `json:"config_path" toml:"config_path"`
	KeybindingsPath string            `json:"keybindings_path" toml:"keybindings_path"`
	LogPath         string            `json:"log_path" toml:"log_path"`
	Wizard          wizardOutput      `json:"wizard" toml:"wizard"`
	Logging         loggingOutput     `json:"logging" toml:"logging"`
	Export          exportOutput      `json:"export" toml:"export"`
	Clipboard       clipboardOutput   `json:"clipboard" toml:"clipboard"`
	Keybindings     map[string]string `json:"keybindings" toml:"keybindings"`
}

type wizardOutput struct {
	MicroAction string   `json:"micro_action" toml:"micro_action"`
	Dimensions  []string `json:"dimensions,omitempty" toml:"dimensions,omitempty"`
}

type loggingOutput struct {
	Level string `json:"level" toml:"level"`
}

type exportOutput struct {
	Dir    string `json:"dir" toml:"dir"`
	Format string `json:"format" toml:"format"`
	Chart  string `json:"chart" toml:"chart"`
}

type clipboardOutput struct {
	DisableOSC52 bool `json:"disable_osc52" toml:"disable_osc52"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	configPath := fs.String("config", "", "settings file (default ~/.lifewheel/config.toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	payload, err := buildConfigOutput(*defaults, *configPath)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(defaults bool, path string) (configOutput, error) {
	if strings.TrimSpace(path) == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return configOutput{}, err
		}
	}
	cfg := config.Default()
	if !defaults {
		var err error
		if cfg, err = config.LoadFrom(path); err != nil {
			return configOutput{}, err
		}
	}
	keybindingsPath, err := cfg.ResolveKeybindingsPath()
	if err != nil {
		return configOutput{}, err
	}
	exportDir, err := cfg.ResolveExportDir()
	if err != nil {
		return configOutput{}, err
	}
	logPath, err := config.LogPath()
	if err != nil {
		return configOutput{}, err
	}
	bindings := app.DefaultKeybindings()
	if !defaults {
		if bindings, err = app.LoadKeybindings(keybindingsPath); err != nil {
			return configOutput{}, err
		}
	}
	return configOutput{
		ConfigPath:      path,
		KeybindingsPath: keybindingsPath,
		LogPath:         logPath,
		Wizard: wizardOutput{
			MicroAction: cfg.MicroActionPolicy(),
			Dimensions:  cfg.DefaultDimensions(),
		},
		Logging: loggingOutput{Level: cfg.LogLevel()},
		Export: exportOutput{
			Dir:    exportDir,
			Format: cfg.ExportFormat(),
			Chart:  cfg.ChartFormat(),
		},
		Clipboard:   clipboardOutput{DisableOSC52: cfg.Clipboard.DisableOSC52},
		Keybindings: bindings.Bindings(),
	}, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
