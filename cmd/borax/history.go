package main

import (
	"fmt"

	"github.com/myshevchuk/borax-cli/internal/history"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <library>",
	Short: "Show processing history counts for a library",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	lib := openLibrary(args[0])

	sum, err := history.Summarize(lib.HistoryPath, lib.BibPath)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Printf("Processed files: %d\n", sum.Processed)
		fmt.Printf("Topics:          %d\n", sum.Topics)
		fmt.Printf("BibTeX entries:  %d\n", sum.BibEntries)
		return nil
	}
	return outputJSON(sum)
}
