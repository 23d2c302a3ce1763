package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/portside/shiplabel/internal/catalog"
)

var changeCmd = &cobra.Command{
	Use:   "change <id>",
	Short: "Compute release labels for a single change",
	Long: `Determine which release first shipped a change and which releases
received it via cherry-picked backports, and print the resulting labels.

A change merged to mainline but not yet in any release gets the "next"
sentinel label. A change that has not reached mainline gets no labels.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cherries, _ := cmd.Flags().GetBool("cherries")
		doSync, _ := cmd.Flags().GetBool("sync")

		id, err := parseChangeArg(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		cat, cfg, err := openCatalog(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		labelSet, err := cat.LabelsForChange(catalog.ChangeID(id), cherries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		printChange(id, labelSet)

		if doSync {
			labeler, err := newLabeler(ctx, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("%s\n", gray(fmt.Sprintf("Syncing labels as %s", labeler.Actor())))
			if err := labeler.SyncLabels(ctx, id, labelSet); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to sync labels: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	changeCmd.Flags().Bool("cherries", true, "Include cherry-pick labels")
	changeCmd.Flags().Bool("sync", false, "Apply the computed labels to the tracking issue")
	rootCmd.AddCommand(changeCmd)
}

// parseChangeArg accepts "123" or "#123".
func parseChangeArg(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid change id %q", arg)
	}
	return id, nil
}

func printChange(id int, labelSet []string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("%s\n", cyan(fmt.Sprintf("Change #%d", id)))
	if len(labelSet) == 0 {
		fmt.Printf("  %s\n", yellow("not merged to mainline; no release labels"))
		return
	}
	for _, label := range labelSet {
		fmt.Printf("  %s\n", label)
	}
}
