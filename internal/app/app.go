// Package app is the composition root: it wires the catalog, engine,
// storage and rendering together so commands receive fully constructed
// dependencies instead of reaching for globals.
package app

import (
	"context"
	"fmt"

	"github.com/seclens/seclens/internal/catalog"
	"github.com/seclens/seclens/internal/config"
	"github.com/seclens/seclens/internal/engine"
	"github.com/seclens/seclens/internal/logger"
	"github.com/seclens/seclens/internal/output"
	"github.com/seclens/seclens/internal/report"
	"github.com/seclens/seclens/internal/rules"
	"github.com/seclens/seclens/internal/storage"
)

// App owns the wired components for one process
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Catalog  *catalog.Catalog
	Engine   *engine.Engine
	Store    storage.Store
	Renderer *output.Renderer
	Enhancer *report.Enhancer
}

// New builds the application from configuration. Catalog registration
// completes here, before any evaluation can run.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging.Level)

	cat := catalog.New()
	if err := rules.RegisterBuiltin(cat); err != nil {
		return nil, fmt.Errorf("failed to register built-in rules: %w", err)
	}
	if cfg.RulesDir != "" {
		packs, err := rules.LoadDir(cfg.RulesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load rule packs from %s: %w", cfg.RulesDir, err)
		}
		if err := rules.RegisterPacks(cat, packs); err != nil {
			return nil, fmt.Errorf("failed to register rule packs: %w", err)
		}
		log.WithField("dir", cfg.RulesDir).Info(fmt.Sprintf("loaded %d rule pack(s)", len(packs)))
	}

	eng := engine.New(cat,
		engine.WithLogger(log),
		engine.WithWorkers(cfg.Engine.Workers),
		engine.WithRuleTimeout(cfg.Engine.RuleTimeout),
	)

	store, err := newStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	renderer := output.NewRenderer(output.Config{
		EnableColors: !cfg.Output.NoColor,
	})

	return &App{
		Config:   cfg,
		Logger:   log,
		Catalog:  cat,
		Engine:   eng,
		Store:    store,
		Renderer: renderer,
		Enhancer: report.NewEnhancer(cfg.Engine.TopRisks),
	}, nil
}

// newStore selects the storage backend from configuration
func newStore(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	switch cfg.Backend {
	case "", "local":
		return storage.NewLocalStore(cfg.BaseDir)
	case "s3":
		return storage.NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want local or s3)", cfg.Backend)
	}
}
