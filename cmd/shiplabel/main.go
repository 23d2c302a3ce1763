// shiplabel determines which releases of a project contain a given change
// and keeps the matching release and cherry-pick labels on the change's
// tracking issue.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagRepo     string
	flagMainline string
)

var rootCmd = &cobra.Command{
	Use:   "shiplabel",
	Short: "Label changes with the releases that shipped them",
	Long: `shiplabel scans a git repository's release tags and mainline history to
determine which releases already contain a change (and which received it
via cherry-picked backports), then emits the matching release labels for
the change's tracking issue.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to a config file (default: .shiplabel.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "Path to the git repository (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagMainline, "mainline", "", "Mainline ref (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
