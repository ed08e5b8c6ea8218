package main

import (
	"fmt"
	"os"

	"github.com/myshevchuk/borax-cli/internal/library"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <directory>",
	Short: "Interactively initialize a new library",
	Long: `Interactively initialize a new library.

Creates a borax-library.toml manifest in the target directory, plus empty
bibliography and history files and, on request, a vocabulary template.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	prompter := &library.Prompter{In: os.Stdin, Out: os.Stdout}

	lib, err := library.Init(args[0], prompter)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	fmt.Printf("\nLibrary initialized:\n")
	fmt.Printf("  Root:     %s\n", lib.Root)
	fmt.Printf("  BibTeX:   %s\n", lib.BibPath)
	fmt.Printf("  History:  %s\n", lib.HistoryPath)
	fmt.Printf("  Vocab:    %s\n", lib.VocabPath)
	return nil
}
