// Package main is the entry point for the bdep build runner.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/sourcewizard-ai/bdep/cmd/bdep/commands"
	"github.com/sourcewizard-ai/bdep/internal/app"
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	_ "github.com/sourcewizard-ai/bdep/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildFailed) {
			// Per-package outcomes were already reported.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
