// Package commands implements the CLI commands for parcel.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
	"go.trai.ch/parcel/internal/build"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/parcel/internal/engine/catalogsync"
	"go.trai.ch/parcel/internal/engine/publisher"
)

// CLI represents the command line interface for parcel.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
	json    bool
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) (*publisher.Result, error)
	Sync(ctx context.Context) (*catalogsync.Result, error)
	Fetch(ctx context.Context, opts app.FetchOptions) ([]app.FetchResult, error)
	Inspect(ctx context.Context, opts app.InspectOptions) (*app.InspectReport, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "parcel",
		Short:         "Versioned content bundles, fetched on demand",
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

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&c.json, "json", false, "Emit logs and results as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if j, ok := c.logger.(jsonLogger); ok && c.json {
			j.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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
