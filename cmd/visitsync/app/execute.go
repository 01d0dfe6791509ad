package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the visitsync CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "visitsync",
		Short:   "Therapy visit reconciliation CLI",
		Version: a.version,
		Long: `Visitsync reconciles therapy visit records between the agency's task
manager and the therapists' visit scheduler: it fills missing visit times,
attaches fetched visit documents, creates task entries for scheduled visits
the task manager does not know about, and appends a human-readable record
of every change it makes to an append-only change log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.visitsync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.Mappings, "mappings", a.config.Mappings, "task mapping override file (YAML)")

	rootCmd.SetVersionTemplate("visitsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// registerCommands adds all subcommands to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewRunCommand())
	rootCmd.AddCommand(a.NewMappingsCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
