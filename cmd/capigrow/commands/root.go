// Package commands implements the CLI commands for capigrow.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/adapters/config" //nolint:depguard // Flag default names the env override
	"go.trai.ch/capigrow/internal/app"
	"go.trai.ch/capigrow/internal/build"
)

// CLI represents the command line interface for capigrow.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "capigrow",
		Short:         "Invest, track your portfolio and complete KYC from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}} (commit: %s, date: %s)\n", build.Commit, build.Date))

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (default is $"+config.EnvConfigPath+" or the user config dir)")
	rootCmd.PersistentFlags().Bool("trace", false, "Print every remote fetch and write after the command")
	rootCmd.PersistentFlags().Bool("stats", false, "Print cache and write counters after the command")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPostRunE = c.report

	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newSignupCmd())
	rootCmd.AddCommand(c.newVerifyOTPCmd())
	rootCmd.AddCommand(c.newResendOTPCmd())
	rootCmd.AddCommand(c.newRefreshCmd())
	rootCmd.AddCommand(c.newLogoutCmd())
	rootCmd.AddCommand(c.newMeCmd())
	rootCmd.AddCommand(c.newProfileCmd())
	rootCmd.AddCommand(c.newPortfolioCmd())
	rootCmd.AddCommand(c.newInvestmentsCmd())
	rootCmd.AddCommand(c.newTransactionsCmd())
	rootCmd.AddCommand(c.newNotificationsCmd())
	rootCmd.AddCommand(c.newKYCCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(newMockServerCmd())
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

// SetOutput redirects command output and errors to w. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) report(cmd *cobra.Command, _ []string) error {
	trace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}
	if !trace && !stats {
		return nil
	}
	return c.app.Report(cmd.ErrOrStderr(), app.ReportOptions{Trace: trace, Stats: stats})
}
