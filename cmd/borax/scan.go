package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <library>",
	Short: "List PDFs that have not been tagged yet",
	Long: `Scan a library and report which PDFs change detection has not seen.

A file counts as processed when its current checksum matches either the
checksum recorded at first sight or the one recorded after tagging.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	lib := openLibrary(args[0])
	engine, closeCache := newEngine(lib)
	defer closeCache()

	result, err := engine.Scan(lib.Root, lib.HistoryPath)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Printf("Found %d PDFs; %d unprocessed.\n", result.PDFCount, len(result.Unprocessed))
		for _, p := range result.Unprocessed {
			fmt.Printf("  - %s\n", p)
		}
		return nil
	}
	return outputJSON(result)
}
