// Package main implements the routine CLI.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "routine",
	Short: "Routine - a personal task list with presets and history",
	Long: `Routine keeps a personal task list.

Tasks are sorted by status, how soon they are due, priority, and due date
every time they are listed. Presets create bundles of tasks in one step and
history shows what was finished each day.`,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log storage activity to stderr")
}
