// Package cli wires the partnerpulse commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "partnerpulse",
	Short: "Partner-network analytics dashboard",
	Long: `partnerpulse serves the partner-network analytics dashboard.

The derivation engine is deterministic: the same seed and the same day
always render the same funnels, leaderboards, calendars and plan rows.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
