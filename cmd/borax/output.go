package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/myshevchuk/borax-cli/internal/history"
	"github.com/myshevchuk/borax-cli/internal/library"
	"github.com/myshevchuk/borax-cli/internal/metadata"
	"github.com/myshevchuk/borax-cli/internal/pdftext"
	"github.com/myshevchuk/borax-cli/internal/tagging"
	"github.com/myshevchuk/borax-cli/internal/textcache"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps an error to an exit code per the error taxonomy:
// corrupt history is a data error, everything else a general error.
func exitCodeFor(err error) int {
	if errors.Is(err, history.ErrCorrupt) {
		return ExitDataError
	}
	return ExitError
}

// warnf prints a non-fatal warning to stderr.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// openLibrary loads the library at path or exits with a configuration error.
func openLibrary(path string) *library.Library {
	lib, err := library.Open(path)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return lib
}

// newEngine assembles the tagging engine with its real collaborators:
// exiftool for metadata, mdls for Finder tags, the pure-Go PDF reader for
// text. The returned closer releases the text cache; a cache that fails to
// open degrades to uncached extraction.
func newEngine(lib *library.Library) (*tagging.Engine, func()) {
	engine := &tagging.Engine{
		Index:   lib.Vocab.Flatten(),
		Meta:    &metadata.ExifTool{Bin: os.Getenv("BORAX_EXIFTOOL")},
		Writer:  &metadata.ExifTool{Bin: os.Getenv("BORAX_EXIFTOOL")},
		SysTags: &metadata.MDLS{Bin: os.Getenv("BORAX_MDLS")},
		Extract: &pdftext.Extractor{},
		Warnf:   warnf,
	}
	if humanOutput {
		engine.Logf = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
	}

	closer := func() {}
	cache, err := textcache.Open(lib.CachePath)
	if err != nil {
		warnf("text cache unavailable: %v", err)
	} else {
		engine.Cache = cache
		closer = func() { cache.Close() }
	}
	return engine, closer
}
