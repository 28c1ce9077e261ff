// Package main is the entry point for the capigrow client.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/spf13/pflag"
	"go.trai.ch/capigrow/cmd/capigrow/commands"
	"go.trai.ch/capigrow/internal/adapters/config"
	"go.trai.ch/capigrow/internal/app"
	_ "go.trai.ch/capigrow/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*commands.CLI)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Apply --config before the components read the configuration
	if err := applyConfigFlag(os.Args[1:]); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// 2. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// 3. Interface - CLI
	cli := commands.New(components.App)
	for _, opt := range opts {
		opt(cli)
	}

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// applyConfigFlag exports --config to the environment. The components are built before
// cobra parses flags, so the configuration node only sees it there.
func applyConfigFlag(args []string) error {
	fs := pflag.NewFlagSet("capigrow", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.StringP("config", "c", "", "")
	_ = fs.Parse(args)
	if *path == "" {
		return nil
	}
	return os.Setenv(config.EnvConfigPath, *path)
}
