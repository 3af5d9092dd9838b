package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	builderrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Incremental bool `short:"i" help:"Skip posts whose source is unchanged since the last build"`
	} `cmd:"" help:"Build the site from the configured content directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file with example content"`

	Watch struct {
		Addr string `short:"a" help:"Preview server listen address (overrides config)"`
	} `cmd:"" help:"Rebuild on content changes and serve the output directory"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	var err error
	switch ctx.Command() {
	case "build":
		err = runBuild(context.Background(), CLI.Config, CLI.Build.Incremental)
	case "init":
		err = runInit(CLI.Config, CLI.Init.Force)
	case "watch":
		sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		err = runWatch(sigCtx, CLI.Config, CLI.Watch.Addr)
		stop()
		if err == context.Canceled {
			err = nil
		}
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}

	if err != nil {
		adapter := builderrors.NewCLIErrorAdapter(CLI.Verbose)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
