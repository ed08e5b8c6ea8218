package tagging

import (
	"fmt"

	"github.com/myshevchuk/borax-cli/internal/metadata"
	"github.com/myshevchuk/borax-cli/internal/vocab"
)

// Mode selects how newly inferred tags interact with a document's existing
// keyword field.
type Mode string

const (
	// ModeAppend adds new tags after the existing ones.
	ModeAppend Mode = "append"
	// ModeOverwrite replaces the existing tag set entirely.
	ModeOverwrite Mode = "overwrite"
)

// MergeTags concatenates tag lists in order and de-duplicates keeping the
// first occurrence. The caller passes sources in priority order: discipline
// tags, document-type tags, level tags, then scored keyword tags.
func MergeTags(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, list := range lists {
		for _, t := range list {
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	return merged
}

// ValidateEmbeddedTags partitions pre-existing tags into recognized
// document-type and level tags. Unrecognized tags are dropped, not errors;
// they are returned so the caller can warn about them.
func ValidateEmbeddedTags(tags []string, idx vocab.Index) (docTags, levelTags, dropped []string) {
	for _, t := range tags {
		switch {
		case idx.DocumentTypes.Contains(t):
			docTags = append(docTags, t)
		case idx.Levels.Contains(t):
			levelTags = append(levelTags, t)
		default:
			dropped = append(dropped, t)
		}
	}
	return docTags, levelTags, dropped
}

// applyTags computes the final persisted tag list for a document and, unless
// dryRun is set, writes it through the metadata writer. The dry-run path
// computes exactly the list the real path would write.
//
// In append mode an empty merged list is a no-op: the existing tags are
// returned untouched and nothing is written.
func (e *Engine) applyTags(path string, merged []string, mode Mode, dryRun bool) ([]string, error) {
	merged = MergeTags(merged)
	if len(merged) == 0 && mode == ModeAppend {
		return nil, nil
	}

	final := merged
	if mode == ModeAppend {
		existing := e.existingKeywords(path)
		seen := make(map[string]struct{}, len(existing))
		for _, t := range existing {
			seen[t] = struct{}{}
		}
		final = append([]string(nil), existing...)
		for _, t := range merged {
			if _, dup := seen[t]; !dup {
				final = append(final, t)
			}
		}
	}

	if dryRun {
		return final, nil
	}
	if err := e.Writer.WriteKeywords(path, final, true); err != nil {
		return nil, fmt.Errorf("tagging %s: %w", path, err)
	}
	return final, nil
}

// existingKeywords reads the document's current keyword field. Any reader
// failure reads as "no existing keywords".
func (e *Engine) existingKeywords(path string) []string {
	fields, err := e.Meta.Fields(path, metadata.KeywordsField)
	if err != nil {
		return nil
	}
	if v, ok := metadata.Lookup(fields, metadata.KeywordsField); ok {
		return metadata.SplitKeywords(v)
	}
	return nil
}
