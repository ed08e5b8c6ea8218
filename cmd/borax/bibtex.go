package main

import (
	"context"
	"fmt"
	"os"

	"github.com/myshevchuk/borax-cli/internal/bibtex"
	"github.com/myshevchuk/borax-cli/internal/enrich"
	"github.com/myshevchuk/borax-cli/internal/metadata"
	"github.com/spf13/cobra"
)

var bibtexNoEnrich bool

func init() {
	bibtexCmd.Flags().BoolVar(&bibtexNoEnrich, "no-enrich", false, "Skip network metadata lookups")
	rootCmd.AddCommand(bibtexCmd)
}

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <library>",
	Short: "Export BibTeX entries for every PDF in a library",
	Long: `Export a BibTeX entry for every PDF in a library.

Entries are built from embedded metadata, enriched best-effort via CrossRef
(DOI) or OpenLibrary (ISBN), and appended to the library's .bib file.
Files already referenced there are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBibtex,
}

// BibtexResponse reports an export run.
type BibtexResponse struct {
	Added int    `json:"added"`
	Bib   string `json:"bib"`
}

func runBibtex(cmd *cobra.Command, args []string) error {
	lib := openLibrary(args[0])

	exporter := &bibtex.Exporter{
		Meta:    &metadata.ExifTool{Bin: os.Getenv("BORAX_EXIFTOOL")},
		ScanDOI: true,
		Warnf:   warnf,
	}
	if !bibtexNoEnrich {
		exporter.Enrich = enrich.NewClient(enrich.WithMailto(os.Getenv("CROSSREF_MAILTO")))
	}

	if humanOutput {
		fmt.Printf("Exporting BibTeX for library: %s\n", lib.Name)
	}

	added, err := exporter.ExportLibrary(context.Background(), lib.Root, lib.BibPath)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Printf("%d entries added to %s\n", added, lib.BibPath)
		return nil
	}
	return outputJSON(BibtexResponse{Added: added, Bib: lib.BibPath})
}
