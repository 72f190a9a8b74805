package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bda-svc/internal/cli"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Interrupt cancels between images; the current image finishes or
	// aborts without leaving a partial artifact.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}
