// Package history provides content-addressed change detection for a
// library. It persists, per tracked file, the checksum observed before and
// after tagging plus the last-known tag set, so repeated runs can skip
// files whose bytes have not changed.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record is the processing state for one tracked file.
type Record struct {
	OriginalChecksum string   `json:"original_checksum"`
	ModifiedChecksum string   `json:"modified_checksum,omitempty"`
	Tags             []string `json:"tags"`
	FirstSeen        string   `json:"first_seen,omitempty"`
	LastModified     string   `json:"last_modified,omitempty"`
}

// History maps absolute file paths to their records. It is loaded and
// rewritten wholesale per run; there is no schema version field and no
// migration path — a format change requires regenerating the file.
type History map[string]Record

// ErrCorrupt reports a history file that exists but cannot be parsed.
// Callers surface this as a data error rather than re-tagging everything.
var ErrCorrupt = errors.New("history file is corrupt")

// now is stubbed in tests.
var now = func() string { return time.Now().Format(time.RFC3339) }

// Checksum computes the SHA-256 hex digest of a file's content. The digest
// depends only on the bytes, not on read chunking.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file for checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads a history document. A missing file yields an empty history; a
// file that exists but is not well-formed JSON is a hard error, so a
// corrupted history never silently triggers a full re-tagging run.
func Load(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return History{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	h := History{}
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return h, nil
}

// Save writes the full history document, creating parent directories as
// needed. The write replaces any previous content.
func Save(path string, h History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// AlreadyProcessed reports whether a file's current content matches either
// checksum stored for it. No record means not processed. Checksum failures
// (unreadable file) also report not processed so the walker retries it.
func (h History) AlreadyProcessed(path string) bool {
	rec, ok := h[path]
	if !ok {
		return false
	}
	current, err := Checksum(path)
	if err != nil {
		return false
	}
	return current == rec.OriginalChecksum || current == rec.ModifiedChecksum
}

// RecordOriginal captures a file's pre-mutation checksum and initial tags.
// It creates the record or overwrites the original-checksum fields of an
// existing one; the modified checksum is left untouched.
func (h History) RecordOriginal(path string, tags []string) error {
	sum, err := Checksum(path)
	if err != nil {
		return err
	}
	rec := h[path]
	rec.OriginalChecksum = sum
	rec.Tags = append([]string(nil), tags...)
	rec.FirstSeen = now()
	h[path] = rec
	return nil
}

// RecordModified captures a file's post-tagging checksum and final tags.
// With no tags given, the previously stored tags are kept.
func (h History) RecordModified(path string, tags []string) error {
	sum, err := Checksum(path)
	if err != nil {
		return err
	}
	rec := h[path]
	rec.ModifiedChecksum = sum
	if len(tags) > 0 {
		rec.Tags = append([]string(nil), tags...)
	}
	rec.LastModified = now()
	h[path] = rec
	return nil
}

// Summary aggregates a library's processing state.
type Summary struct {
	Processed  int `json:"processed"`
	Topics     int `json:"topics"`
	BibEntries int `json:"bib_entries"`
}

// Summarize reports how many files are tracked, how many distinct tags they
// carry, and how many entries the bibliography file holds.
func Summarize(historyPath, bibPath string) (Summary, error) {
	h, err := Load(historyPath)
	if err != nil {
		return Summary{}, err
	}

	topics := make(map[string]struct{})
	for _, rec := range h {
		for _, t := range rec.Tags {
			topics[t] = struct{}{}
		}
	}

	entries := 0
	if data, err := os.ReadFile(bibPath); err == nil {
		entries = strings.Count(string(data), "@")
	}

	return Summary{Processed: len(h), Topics: len(topics), BibEntries: entries}, nil
}
