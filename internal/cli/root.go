// Package cli implements the Paws command-line interface using Cobra.
// Each subcommand maps to a progression surface (quests, streak, badges,
// level, reset).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paws",
	Short: "Paws — the pet progression engine",
	Long: `Paws tracks quests, daily streaks, badges, and levels for your pet.
All state lives locally under ~/.paws; no accounts, no network sync.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
