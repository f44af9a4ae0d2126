// Package commands implements the CLI commands for depclean.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depclean/internal/app"
	"go.trai.ch/depclean/internal/build"
	"go.trai.ch/depclean/internal/core/domain"
)

// CLI represents the command line interface for depclean.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Analyze(ctx context.Context, w io.Writer, opts app.AnalyzeOptions) (*domain.Report, error)
	SetJSONLogs(enable bool)
	SetLogLevel(level domain.LogLevel)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depclean",
		Short:         "A tool to analyze and optimize project dependencies",
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

	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs to stderr as JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "Minimum log level: debug, info, warn or error")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("json-logs") {
			jsonLogs, err := cmd.Flags().GetBool("json-logs")
			if err != nil {
				return err
			}
			c.app.SetJSONLogs(jsonLogs)
		}
		if cmd.Flags().Changed("log-level") {
			name, err := cmd.Flags().GetString("log-level")
			if err != nil {
				return err
			}
			level, err := domain.ParseLogLevel(name)
			if err != nil {
				return err
			}
			c.app.SetLogLevel(level)
		}
		return nil
	}

	rootCmd.AddCommand(c.newAnalyzeCmd())
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
