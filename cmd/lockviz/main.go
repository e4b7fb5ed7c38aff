// Package main is the entry point for the lockviz pnpm lockfile explorer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/octogonz/pnpm-lockfile-visualizer/cmd/lockviz/commands"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/app"
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/wiring"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// ComponentProvider builds the application graph and returns a release function.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, resolveComponents))
}

func resolveComponents(ctx context.Context) (*app.Components, func(), error) {
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	return components, func() {}, err
}

// run executes one lockviz invocation and returns the process exit code.
// Ctrl-C and SIGTERM cancel the context so watch sessions stop cleanly.
func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, release, err := provider(ctx)
	if err != nil {
		// No logger exists until the graph is built.
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer release()

	for _, apply := range opts {
		apply(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return exitFailure
	}
	return exitOK
}
