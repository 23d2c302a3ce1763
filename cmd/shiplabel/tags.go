package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the discovered release tags in version order",
	Long: `List every tag that qualifies as a release: a valid semantic version
with no pre-release or build suffix. Tags are ordered by semantic-version
comparison, ascending.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cat, _, err := newCatalog(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		tags, err := cat.ReleaseTags(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(tags) == 0 {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("%s\n", yellow("No release tags found"))
			return
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
