package main

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
)

func runBuild(ctx context.Context, configPath string, incremental bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if incremental {
		cfg.Build.Incremental = true
	}

	opts := []builder.Option{}
	store, err := state.Open(cfg.State.Path)
	if err != nil {
		// The state store is an optimization; a build must not fail because
		// the database is unavailable.
		slog.Warn("State store unavailable, incremental builds disabled", logfields.Error(err))
	} else {
		defer store.Close()
		opts = append(opts, builder.WithStateStore(store))
	}

	report, err := builder.New(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	for _, re := range report.Errors {
		slog.Warn("Skipped file", logfields.Category(re.Category), slog.String("detail", re.Message))
	}
	return nil
}
