package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
)

var version = "dev"

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "mediabatch",
		Usage:    "Batch file operations for station media libraries",
		Version:  version,
		Flags:    globalFlags(),
		Before:   r.Setup,
		Commands: r.register(),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(NewRunner(RunnerOpts{})).Run(ctx, os.Args); err != nil {
		logger.Default().Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
