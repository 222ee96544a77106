package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vk/burstrank/internal/config"
	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/hcl"
	"github.com/vk/burstrank/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	runID    string
	cfg      *Config
	settings *config.Model

	phase      atomic.Value // Phase
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It builds an isolated
// logger tagged with a fresh run id and resolves the settings from defaults,
// the optional config file, the environment and cfg.Flags, in that order.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application config: %w", err)
	}

	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings, err := resolveSettings(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Settings resolved.",
		"iterations", settings.Engine.Iterations,
		"buckets", settings.Engine.Buckets,
		"base_rank", settings.Engine.BaseRank,
		"damping_factor", settings.Engine.DampingFactor,
		"output", settings.Output.Path,
	)

	a := &App{
		outW:     outW,
		logger:   logger,
		runID:    runID,
		cfg:      cfg,
		settings: settings,
	}
	a.setPhase(PhaseIdle)
	return a, nil
}

// Settings returns the resolved computation settings.
func (a *App) Settings() config.Model {
	return *a.settings
}

// RunID returns the identifier attached to every log record of this app.
func (a *App) RunID() string {
	return a.runID
}

func resolveSettings(ctx context.Context, cfg *Config) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	settings := config.Default()

	if cfg.ConfigPath != "" {
		loader, err := loaderFor(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		layer, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		settings.Apply(layer)
		logger.Debug("Configuration file applied.", "path", cfg.ConfigPath)
	}

	lookup, err := config.EnvLookup(cfg.EnvFile)
	if err != nil {
		return nil, err
	}
	envLayer, err := config.FromEnv(lookup)
	if err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	settings.Apply(envLayer)
	settings.Apply(cfg.Flags)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// loaderFor picks a config.Loader by file extension.
func loaderFor(path string) (config.Loader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlconf.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported config file %q: expected .hcl, .yaml or .yml", path)
	}
}
