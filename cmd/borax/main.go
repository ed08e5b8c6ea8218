// Package main provides the borax CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Pick up BORAX_* and CROSSREF_MAILTO overrides from a local .env.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "borax",
	Short: "Organize a personal PDF library with vocabulary-driven tags",
	Long: `borax organizes a personal library of PDFs.

It infers subject tags from folder structure, embedded metadata, and
full-text keyword scoring against a controlled vocabulary, writes the tags
back into the documents, tracks content checksums so repeated runs are
incremental, and exports BibTeX records. All commands output JSON by
default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
