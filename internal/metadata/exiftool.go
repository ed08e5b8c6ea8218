package metadata

import (
	"encoding/json"
	"fmt"
	"os/exec"
)

// ExifTool reads and writes embedded metadata by invoking the exiftool
// binary. The zero value uses the binary found on PATH.
type ExifTool struct {
	// Bin overrides the exiftool binary path. Empty means "exiftool".
	Bin string
}

func (e *ExifTool) bin() string {
	if e.Bin != "" {
		return e.Bin
	}
	return "exiftool"
}

// Fields runs a targeted read of the requested fields.
func (e *ExifTool) Fields(path string, fields ...string) (map[string]string, error) {
	args := make([]string, 0, len(fields)+2)
	args = append(args, "-json")
	for _, f := range fields {
		args = append(args, "-"+f)
	}
	args = append(args, path)
	return e.readJSON(args)
}

// AllFields enumerates every metadata field exiftool reports for the file.
func (e *ExifTool) AllFields(path string) (map[string]string, error) {
	return e.readJSON([]string{"-json", path})
}

func (e *ExifTool) readJSON(args []string) (map[string]string, error) {
	if _, err := exec.LookPath(e.bin()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, e.bin())
	}

	out, err := exec.Command(e.bin(), args...).Output()
	if err != nil {
		// exiftool exits nonzero for unreadable files; callers treat
		// that as "no metadata", matching the empty-result contract.
		return map[string]string{}, nil
	}

	var docs []map[string]any
	if err := json.Unmarshal(out, &docs); err != nil || len(docs) == 0 {
		return map[string]string{}, nil
	}

	fields := make(map[string]string, len(docs[0]))
	for k, v := range docs[0] {
		if k == "SourceFile" {
			continue
		}
		fields[k] = fmt.Sprint(v)
	}
	return fields, nil
}

// WriteKeywords overwrites the keyword field with the given tags joined by
// the standard delimiter. An empty list clears the field. The write is
// idempotent: re-writing the same list leaves the stored field unchanged.
func (e *ExifTool) WriteKeywords(path string, tags []string, preserveTimes bool) error {
	if _, err := exec.LookPath(e.bin()); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, e.bin())
	}

	args := []string{"-" + KeywordsField + "=" + JoinKeywords(tags)}
	if preserveTimes {
		args = append(args, "-preserve")
	}
	args = append(args, "-overwrite_original", path)

	if out, err := exec.Command(e.bin(), args...).CombinedOutput(); err != nil {
		return fmt.Errorf("writing keywords to %s: %w: %s", path, err, out)
	}
	return nil
}
