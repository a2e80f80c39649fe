package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lifewheel/internal/app"
	"lifewheel/internal/chart"
	"lifewheel/internal/config"
	"lifewheel/internal/logging"
	"lifewheel/internal/report"
	"lifewheel/internal/wheel"
)

type UICommand struct {
	stderr  io.Writer
	runUI   func(ctx context.Context, opts app.Options) error
	version string
}

func NewUICommand(stderr io.Writer, runUI func(ctx context.Context, opts app.Options) error, version string) *UICommand {
	return &UICommand{stderr: stderr, runUI: runUI, version: version}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	configPath := fs.String("config", "", "settings file (default ~/.lifewheel/config.toml)")
	microAction := fs.String("micro-action", "", "micro action policy: strict|relaxed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(*microAction); v != "" {
		cfg.Wizard.MicroAction = v
	}

	logger, closer := openUILogger(cfg)
	if closer != nil {
		defer closer.Close()
	}
	logger = logger.With(logging.F("session", logging.NewSessionID()), logging.F("version", c.version))

	opts, err := buildUIOptions(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.runUI(ctx, opts)
}

func loadConfig(path string) (config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// openUILogger logs to the UI log file. The terminal belongs to the wizard, so
// a log file that cannot be opened silences logging instead of failing.
func openUILogger(cfg config.Config) (logging.Logger, io.Closer) {
	path, err := config.LogPath()
	if err != nil {
		return logging.Nop(), nil
	}
	logger, closer, err := logging.Open(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), nil
	}
	return logger, closer
}

// buildUIOptions turns settings into wizard options. Settings problems that
// have a safe default become startup warnings; an unknown micro action policy
// is an error.
func buildUIOptions(cfg config.Config, logger logging.Logger) (app.Options, error) {
	var warnings []string
	if err := cfg.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			warnings = append(warnings, "config: "+line)
		}
	}
	policy, err := wheel.ParseMicroActionPolicy(cfg.MicroActionPolicy())
	if err != nil {
		return app.Options{}, err
	}

	exporter, err := buildExporter(cfg)
	if err != nil {
		warnings = append(warnings, "export: "+err.Error())
	}

	bindings := app.DefaultKeybindings()
	if path, err := cfg.ResolveKeybindingsPath(); err != nil {
		warnings = append(warnings, "keybindings: "+err.Error())
	} else if loaded, err := app.LoadKeybindings(path); err != nil {
		logger.Warn("keybindings_load_failed", logging.F("path", path), logging.F("error", err))
		warnings = append(warnings, "keybindings: "+err.Error())
	} else {
		bindings = loaded
	}

	minHeight, maxHeight := cfg.ReflectionHeights()
	return app.Options{
		Controller: wheel.NewController(wheel.Options{
			DefaultLabels:     cfg.DefaultDimensions(),
			MicroActionPolicy: policy,
		}),
		Exporter:            exporter,
		Clipboard:           report.Clipboard{DisableOSC52: cfg.Clipboard.DisableOSC52},
		Keybindings:         bindings,
		Logger:              logger,
		ReflectionMinHeight: minHeight,
		ReflectionMaxHeight: maxHeight,
		StartupWarnings:     warnings,
	}, nil
}

func buildExporter(cfg config.Config) (report.Exporter, error) {
	format, err := report.ParseFormat(cfg.ExportFormat())
	if err != nil {
		return report.Exporter{}, err
	}
	exporter := report.Exporter{Format: format}
	if raw := cfg.ChartFormat(); raw != "none" {
		imageFormat, err := chart.ParseImageFormat(raw)
		if err != nil {
			return report.Exporter{}, err
		}
		exporter.Chart = imageFormat
	}
	dir, err := cfg.ResolveExportDir()
	if err != nil {
		return exporter, err
	}
	exporter.Dir = dir
	return exporter, nil
}
