package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hexfield/rulecore/internal/domain/services"
	"github.com/hexfield/rulecore/internal/infrastructure/catalog/sqlite"
	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

// deps holds the dependencies commands operate through.
type deps struct {
	config        *config.Config
	store         *sqlite.Repository
	rulesetSvc    *services.RulesetService
	optionService *services.OptionService
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("creating catalog store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring catalog schema: %w", err)
	}

	return fn(&deps{
		config:        cfg,
		store:         store,
		rulesetSvc:    services.NewRulesetService(nil),
		optionService: services.NewOptionService(store),
	})
}
