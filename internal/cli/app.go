package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logger"
	"github.com/idilsaglam/tada/internal/repository"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
	"github.com/idilsaglam/tada/internal/usecase"
)

// app is everything one CLI invocation needs, wired from config.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	storage store.Storage
	repo    *repository.TodoListRepository
	uc      *usecase.Set
}

func openApp(ctx context.Context, opt Options) (*app, error) {
	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opt.Group {
		cfg.Group = true
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	ui.SetColorForcing(opt.Color, opt.NoColor)
	ui.SetTheme(cfg.Theme)

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	storage, err := config.OpenStorage(ctx, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	log.Debug("storage opened", "backend", cfg.Storage, "path", cfg.Path)

	repo := repository.New(storage, log)
	return &app{
		cfg:     cfg,
		log:     log,
		storage: storage,
		repo:    repo,
		uc:      usecase.NewSet(repo),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.log.Warn("close storage", "error", err)
	}
	a.log.Sync()
}
