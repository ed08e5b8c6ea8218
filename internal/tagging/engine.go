package tagging

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/myshevchuk/borax-cli/internal/history"
	"github.com/myshevchuk/borax-cli/internal/metadata"
	"github.com/myshevchuk/borax-cli/internal/vocab"
)

// TextExtractor supplies lowercase full text for a file, or an empty string
// when the file cannot be read as text.
type TextExtractor interface {
	Text(path string) (string, error)
}

// TextCache caches extracted text by content checksum. Implementations must
// tolerate concurrent absence; the engine works with a nil cache.
type TextCache interface {
	Get(checksum string) (string, bool)
	Put(checksum, text string) error
}

// Engine drives the per-file tagging pass. All external tool access goes
// through the collaborator interfaces so the engine is testable with fakes.
type Engine struct {
	Index   vocab.Index
	Meta    metadata.Reader
	Writer  metadata.Writer
	SysTags metadata.SystemTagReader
	Extract TextExtractor
	Cache   TextCache // optional

	// Logf reports progress, Warnf reports recoverable per-file problems.
	// Both may be nil.
	Logf  func(format string, args ...any)
	Warnf func(format string, args ...any)
}

// TagOptions control one tagging run.
type TagOptions struct {
	Override bool // reprocess files the history says are done
	DryRun   bool // compute and report tags without writing anything
	Mode     Mode // append or overwrite
}

// FileResult is the outcome of one file's tagging pass.
type FileResult struct {
	Path    string   `json:"path"`
	Tags    []string `json:"tags,omitempty"`
	Skipped bool     `json:"skipped,omitempty"`
}

// RunResult is the outcome of a full tagging run.
type RunResult struct {
	Processed int          `json:"processed"`
	Skipped   int          `json:"skipped"`
	Files     []FileResult `json:"files,omitempty"`
}

// ScanResult summarizes a scan pass.
type ScanResult struct {
	PDFCount    int      `json:"pdf_count"`
	Unprocessed []string `json:"unprocessed"`
}

// Scan walks the library and reports which PDFs have no up-to-date history
// record. It never mutates history.
func (e *Engine) Scan(root, historyPath string) (*ScanResult, error) {
	h, err := history.Load(historyPath)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Unprocessed: []string{}}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isPDF(path) {
			return err
		}
		result.PDFCount++
		if !h.AlreadyProcessed(path) {
			result.Unprocessed = append(result.Unprocessed, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning library: %w", err)
	}
	return result, nil
}

// TagLibrary walks the library tree and tags every PDF that change
// detection has not already seen. Discipline tags are derived once per
// directory from its path segments. History is saved once at the end of the
// walk and never in dry-run mode, so an interrupted run loses only its own
// in-memory progress.
func (e *Engine) TagLibrary(root, historyPath string, opts TagOptions) (*RunResult, error) {
	if opts.Mode == "" {
		opts.Mode = ModeAppend
	}

	h, err := history.Load(historyPath)
	if err != nil {
		return nil, err
	}

	result := &RunResult{}
	dirTags := make(map[string][]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirTags[path] = e.disciplineTags(root, path)
			return nil
		}
		if !isPDF(path) {
			return nil
		}

		discTags, ok := dirTags[filepath.Dir(path)]
		if !ok {
			discTags = e.disciplineTags(root, filepath.Dir(path))
		}

		fr := e.tagFile(path, discTags, h, opts)
		if fr.Skipped {
			result.Skipped++
		} else {
			result.Processed++
		}
		result.Files = append(result.Files, fr)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking library: %w", err)
	}

	if !opts.DryRun {
		if err := history.Save(historyPath, h); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// disciplineTags derives discipline tags from a directory's path segments
// relative to the library root.
func (e *Engine) disciplineTags(root, dir string) []string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return nil
	}
	segments := strings.Split(rel, string(filepath.Separator))
	return vocab.MatchTerms(segments, e.Index.DisciplineTerms)
}

// tagFile runs the per-file state machine: change detection, tag gathering,
// reconciliation, write, history update. Every external failure degrades to
// partial tags; the file still ends up with a history entry so default runs
// do not retry it forever.
func (e *Engine) tagFile(path string, discTags []string, h history.History, opts TagOptions) FileResult {
	if !opts.Override && h.AlreadyProcessed(path) {
		e.logf("skipping already-tagged file: %s", filepath.Base(path))
		return FileResult{Path: path, Skipped: true}
	}

	if err := h.RecordOriginal(path, discTags); err != nil {
		e.warnf("recording original state of %s: %v", path, err)
		return FileResult{Path: path, Skipped: true}
	}

	docTags, levelTags := e.embeddedTags(path)
	scored := ScoreKeywords(e.extractText(path), e.Index.Keywords)

	merged := MergeTags(discTags, docTags, levelTags, Terms(scored))
	final, err := e.applyTags(path, merged, opts.Mode, opts.DryRun)
	if err != nil {
		e.warnf("%v", err)
		final = nil
	}

	stored := final
	if len(stored) == 0 {
		stored = merged
	}
	if err := h.RecordModified(path, stored); err != nil {
		e.warnf("recording modified state of %s: %v", path, err)
	}

	e.logf("%s -> %s", filepath.Base(path), strings.Join(stored, ", "))
	return FileResult{Path: path, Tags: stored}
}

// embeddedTags reads the file's OS tags and validates them against the
// vocabulary. Tool absence and read failures read as "no tags".
func (e *Engine) embeddedTags(path string) (docTags, levelTags []string) {
	if e.SysTags == nil {
		return nil, nil
	}
	tags, err := e.SysTags.SystemTags(path)
	if err != nil {
		return nil, nil
	}
	docTags, levelTags, dropped := ValidateEmbeddedTags(tags, e.Index)
	if len(dropped) > 0 {
		e.warnf("ignored unrecognized tags on %s: %s", filepath.Base(path), strings.Join(dropped, ", "))
	}
	return docTags, levelTags
}

// extractText returns the file's lowercase text, consulting the checksum
// keyed cache when one is configured.
func (e *Engine) extractText(path string) string {
	var sum string
	if e.Cache != nil {
		if s, err := history.Checksum(path); err == nil {
			sum = s
			if text, ok := e.Cache.Get(sum); ok {
				return text
			}
		}
	}

	if e.Extract == nil {
		return ""
	}
	text, err := e.Extract.Text(path)
	if err != nil {
		e.warnf("extracting text from %s: %v", path, err)
		return ""
	}

	if e.Cache != nil && sum != "" && text != "" {
		if err := e.Cache.Put(sum, text); err != nil {
			e.warnf("caching text for %s: %v", path, err)
		}
	}
	return text
}

func (e *Engine) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

func (e *Engine) warnf(format string, args ...any) {
	if e.Warnf != nil {
		e.Warnf(format, args...)
	}
}

// isPDF reports whether a path names a PDF file.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
