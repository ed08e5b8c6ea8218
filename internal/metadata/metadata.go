// Package metadata defines the narrow interfaces through which the tagging
// engine talks to external metadata tools, plus exiftool- and mdls-backed
// implementations. Keeping the engine behind these interfaces means its
// logic is testable with fakes that never spawn a process.
package metadata

import (
	"errors"
	"strings"
)

// KeywordsField is the embedded metadata field that stores the tag list.
const KeywordsField = "XMP-pdf:Keywords"

// Delimiter joins tags into the stored keyword string.
const Delimiter = "; "

// ErrToolNotFound reports that the external tool binary is not installed.
// Callers use it to distinguish "tool absent" from "tool ran and found
// nothing", which reads as an empty result.
var ErrToolNotFound = errors.New("external metadata tool not found")

// Reader reads embedded metadata fields from a file.
type Reader interface {
	// Fields returns the requested fields that are present in the file.
	Fields(path string, fields ...string) (map[string]string, error)
	// AllFields enumerates every metadata field present in the file.
	AllFields(path string) (map[string]string, error)
}

// Writer overwrites a file's keyword field with an ordered tag list.
// Writing the same list twice must yield the same stored field.
type Writer interface {
	WriteKeywords(path string, tags []string, preserveTimes bool) error
}

// SystemTagReader reads OS-level (Finder) tags attached to a file.
type SystemTagReader interface {
	SystemTags(path string) ([]string, error)
}

// Lookup finds a field by its full group-qualified name (for example
// "XMP-pdf:Keywords"), falling back to the bare tag name, which is how
// exiftool labels fields when no group flag is passed.
func Lookup(fields map[string]string, name string) (string, bool) {
	if v, ok := fields[name]; ok {
		return v, true
	}
	if i := strings.LastIndex(name, ":"); i != -1 {
		if v, ok := fields[name[i+1:]]; ok {
			return v, true
		}
	}
	return "", false
}

// SplitKeywords splits a stored keyword string into its tag list, dropping
// empty entries.
func SplitKeywords(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ";") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinKeywords joins tags into the stored keyword string, dropping empties
// and duplicates while preserving first-occurrence order.
func JoinKeywords(tags []string) string {
	seen := make(map[string]struct{}, len(tags))
	var kept []string
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		kept = append(kept, t)
	}
	return strings.Join(kept, Delimiter)
}
