package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release <tag>",
	Short: "Compute labels for every change introduced by a release",
	Long: `Find all changes first reachable in the given release (commits between
the previous release tag and this one) and compute each change's labels.

With --sync, the labels are applied to every change's tracking issue.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doSync, _ := cmd.Flags().GetBool("sync")
		tag := args[0]

		ctx := context.Background()
		cat, cfg, err := openCatalog(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		changes, err := cat.ChangesIntroducedBy(ctx, tag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Completion order is arbitrary; sort for readable output.
		sort.Slice(changes, func(i, j int) bool { return changes[i].ID < changes[j].ID })

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%s\n", cyan(fmt.Sprintf("Release %s: %d changes", tag, len(changes))))
		for _, change := range changes {
			printChange(int(change.ID), change.Labels)
		}

		if !doSync {
			return
		}

		labeler, err := newLabeler(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("%s\n", gray(fmt.Sprintf("Syncing labels as %s", labeler.Actor())))

		failures := 0
		for _, change := range changes {
			if err := labeler.SyncLabels(ctx, int(change.ID), change.Labels); err != nil {
				fmt.Fprintf(os.Stderr, "Error: sync #%d: %v\n", change.ID, err)
				failures++
			}
		}
		if failures > 0 {
			fmt.Fprintf(os.Stderr, "Error: %d of %d syncs failed\n", failures, len(changes))
			os.Exit(1)
		}
	},
}

func init() {
	releaseCmd.Flags().Bool("sync", false, "Apply the computed labels to every tracking issue")
	rootCmd.AddCommand(releaseCmd)
}
