package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/kin-core/internal/application/handlers"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/domain/services"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
	"github.com/ersonp/kin-core/internal/infrastructure/storage/jsonfile"
	"github.com/ersonp/kin-core/internal/infrastructure/storage/sqlite"
)

// Deps holds high-level dependencies for commands. Only handlers are
// exposed - the service and storage backend stay internal.
type Deps struct {
	Config              *config.Config
	PersonHandler       *handlers.PersonHandler
	RelationshipHandler *handlers.RelationshipHandler
	TreeHandler         *handlers.TreeHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	family *services.FamilyService
}

// withDeps loads config, opens storage, loads the snapshot, and calls the
// provided function. Background saves are flushed and the backend closed
// before it returns, so the process never exits with a write pending.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level
// components. Used by commands that need direct service access.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	storage, err := openStorage(ctx, cfg, cwd)
	if err != nil {
		return err
	}
	defer storage.Close()

	family := services.NewFamilyService(storage, cfg.DomainPolicy())
	family.OnPersistError = func(err error) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer family.Flush()

	if err := family.Load(ctx); err != nil {
		return fmt.Errorf("loading family graph: %w", err)
	}

	deps := &internalDeps{
		Deps: Deps{
			Config:              cfg,
			PersonHandler:       handlers.NewPersonHandler(family),
			RelationshipHandler: handlers.NewRelationshipHandler(family),
			TreeHandler:         handlers.NewTreeHandler(family, cfg.DomainMetrics()),
		},
		family: family,
	}

	return fn(deps)
}

// openStorage builds the configured Storage backend.
func openStorage(ctx context.Context, cfg *config.Config, basePath string) (ports.Storage, error) {
	path := cfg.StoragePath(basePath)

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		repo, err := sqlite.NewRepository(path)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite repository: %w", err)
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("ensuring sqlite schema: %w", err)
		}
		return repo, nil
	case config.BackendJSON:
		store, err := jsonfile.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("creating json store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s, %s)",
			cfg.Storage.Backend, config.BackendSQLite, config.BackendJSON)
	}
}

// withFamily provides direct store access for commands that bypass handlers.
func withFamily(ctx context.Context, fn func(*services.FamilyService) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(d.family)
	})
}
