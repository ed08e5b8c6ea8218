package main

import (
	"fmt"

	"github.com/myshevchuk/borax-cli/internal/tagging"
	"github.com/spf13/cobra"
)

var (
	tagOverride  bool
	tagDryRun    bool
	tagOverwrite bool
	tagAppend    bool
)

func init() {
	tagCmd.Flags().BoolVar(&tagOverride, "override", false, "Ignore history and reprocess all PDFs")
	tagCmd.Flags().BoolVar(&tagDryRun, "dry-run", false, "Preview tagging changes without modifying files")
	tagCmd.Flags().BoolVar(&tagOverwrite, "overwrite-tags", false, "Replace existing PDF keywords with newly inferred tags")
	tagCmd.Flags().BoolVar(&tagAppend, "append-tags", false, "Append newly inferred tags to existing keywords (default)")
	tagCmd.MarkFlagsMutuallyExclusive("overwrite-tags", "append-tags")
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag <library>",
	Short: "Tag every unprocessed PDF in a library",
	Long: `Tag every PDF in a library that change detection has not seen.

For each file, discipline tags come from fuzzy-matching its folder path
against the vocabulary, recognized document-type and level tags come from
its existing OS tags, and keyword tags come from scoring its text. The
merged tag set is written into the document's keyword field and recorded
in the library history.`,
	Args: cobra.ExactArgs(1),
	RunE: runTag,
}

func runTag(cmd *cobra.Command, args []string) error {
	lib := openLibrary(args[0])
	engine, closeCache := newEngine(lib)
	defer closeCache()

	mode := tagging.ModeAppend
	if tagOverwrite {
		mode = tagging.ModeOverwrite
	}

	if humanOutput {
		fmt.Printf("Tagging library: %s at %s\n", lib.Name, lib.Root)
	}

	result, err := engine.TagLibrary(lib.Root, lib.HistoryPath, tagging.TagOptions{
		Override: tagOverride,
		DryRun:   tagDryRun,
		Mode:     mode,
	})
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Printf("Tagged %d files, skipped %d.\n", result.Processed, result.Skipped)
		return nil
	}
	return outputJSON(result)
}
