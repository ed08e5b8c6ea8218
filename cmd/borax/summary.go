package main

import (
	"fmt"

	"github.com/myshevchuk/borax-cli/internal/history"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary <library>",
	Short: "Show a library's name, location, and processing counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

// SummaryResponse describes a library and its processing state.
type SummaryResponse struct {
	Name        string `json:"name"`
	Root        string `json:"root"`
	Description string `json:"description,omitempty"`
	Processed   int    `json:"processed"`
	Topics      int    `json:"topics"`
	BibEntries  int    `json:"bib_entries"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	lib := openLibrary(args[0])

	sum, err := history.Summarize(lib.HistoryPath, lib.BibPath)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	resp := SummaryResponse{
		Name:        lib.Name,
		Root:        lib.Root,
		Description: lib.Description,
		Processed:   sum.Processed,
		Topics:      sum.Topics,
		BibEntries:  sum.BibEntries,
	}

	if humanOutput {
		fmt.Printf("Name:        %s\n", resp.Name)
		fmt.Printf("Location:    %s\n", resp.Root)
		fmt.Printf("Description: %s\n", resp.Description)
		fmt.Printf("Processed files: %d\n", resp.Processed)
		fmt.Printf("Unique topics:   %d\n", resp.Topics)
		fmt.Printf("BibTeX entries:  %d\n", resp.BibEntries)
		return nil
	}
	return outputJSON(resp)
}
