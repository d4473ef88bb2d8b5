// Package cli defines Cobra command definitions for the shopfloor CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/tui"
)

var (
	verbose bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "shopfloor",
	Short: "Workshop timer client for the ops backend",
	Long: `Shopfloor tracks workshop time against projects and processes.
It runs exactly one timer session per user: start it, swap it to the
next process, or stop it with completion comments. Stopping a session
that was started from a task completes the task as well.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch the watch TUI if TTY,
		// show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		app, err := newAppContext(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		return tui.Run(tui.NewApp(app.Controller, app.Tasks, app.Config))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print backend call detail on errors")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(processesCmd)
	rootCmd.AddCommand(historyCmd)
}
