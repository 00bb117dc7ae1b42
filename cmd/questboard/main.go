package main

import (
	"fmt"
	"os"

	"github.com/questboard/questboard/internal/build"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "questboard",
		Short: "A neighborhood chore marketplace",
		Long:  "Questboard — post chores as quests, browse what your neighbors need done.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("questboard %s (%s@%s)\n", build.Version, build.Branch, build.Commit)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
