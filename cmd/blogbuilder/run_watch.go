package main

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

func runWatch(ctx context.Context, configPath, addrOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrOverride != "" {
		cfg.Watch.Addr = addrOverride
	}
	// Watch mode always builds incrementally; full rebuilds on every
	// keystroke make the feedback loop miserable.
	cfg.Build.Incremental = true
	cfg.Output.Clean = false

	recorder := metrics.NewPrometheusRecorder()

	opts := []builder.Option{builder.WithRecorder(recorder)}
	store, err := state.Open(cfg.State.Path)
	if err != nil {
		slog.Warn("State store unavailable, incremental builds disabled", logfields.Error(err))
	} else {
		defer store.Close()
		opts = append(opts, builder.WithStateStore(store))
	}
	b := builder.New(cfg, opts...)

	var publisher watch.Publisher
	if cfg.Watch.NATSURL != "" {
		publisher, err = watch.NewNATSPublisher(cfg.Watch.NATSURL, cfg.Watch.NATSSubject)
		if err != nil {
			// Event publication is auxiliary; keep watching without it.
			slog.Warn("NATS unavailable, build reports will not be published", logfields.Error(err))
			publisher = nil
		}
	}

	server := watch.NewPreviewServer(cfg.Watch.Addr, cfg.Output.Directory, recorder.Handler())

	w, err := watch.New(cfg, b, publisher, server)
	if err != nil {
		return err
	}

	slog.Info("Watching for changes",
		logfields.Path(cfg.Content.Dir),
		slog.String("addr", cfg.Watch.Addr))
	return w.Run(ctx)
}
