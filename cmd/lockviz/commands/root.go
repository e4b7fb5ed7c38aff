// Package commands implements the CLI commands for lockviz.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/config"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/app"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/build"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for lockviz.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Summary(ctx context.Context, opts app.Options) error
	Importers(ctx context.Context, opts app.Options) error
	Packages(ctx context.Context, opts app.Options, pkgOpts app.PackagesOptions) error
	Show(ctx context.Context, opts app.Options, query string) error
	Why(ctx context.Context, opts app.Options, query string, whyOpts app.WhyOptions) error
	Watch(ctx context.Context, opts app.Options, watchOpts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lockviz",
		Short:         "Explore the dependency graph of a pnpm lockfile",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("lockfile", "l", "", "Path to pnpm-lock.yaml (default: discovered from the working directory)")
	flags.String("root-manifest", domain.DefaultRootManifestPath, "Root package.json that importer keys are relative to")
	flags.StringP("config", "c", "", "Settings file (default: "+domain.SettingsFileName+" in the working directory)")
	flags.Bool("json-logs", false, "Write log messages as JSON")
	flags.Bool("trace", false, "Export trace spans to stderr")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSummaryCmd())
	rootCmd.AddCommand(c.newImportersCmd())
	rootCmd.AddCommand(c.newPackagesCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newWhyCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// settings resolves flags, environment and the settings file for cmd.
func settings(cmd *cobra.Command) (config.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Settings{}, zerr.Wrap(err, "failed to get working directory")
	}

	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{
		ConfigFile: configFile,
		Dir:        wd,
		Flags:      cmd.Flags(),
	})
}

// options converts settings into the options shared by every app command.
func options(s config.Settings) app.Options {
	return app.Options{
		Lockfile:     s.Lockfile,
		RootManifest: s.RootManifest,
		Trace:        s.Trace,
		JSONLogs:     s.JSONLogs,
	}
}
