package metadata

import (
	"fmt"
	"os/exec"
	"strings"
)

// MDLS reads Finder tags through the macOS mdls tool. On systems without
// mdls it reports ErrToolNotFound, which the engine treats as "no tags".
type MDLS struct {
	// Bin overrides the mdls binary path. Empty means "mdls".
	Bin string
}

func (m *MDLS) bin() string {
	if m.Bin != "" {
		return m.Bin
	}
	return "mdls"
}

// SystemTags returns the Finder tags attached to a file.
func (m *MDLS) SystemTags(path string) ([]string, error) {
	if _, err := exec.LookPath(m.bin()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, m.bin())
	}

	out, err := exec.Command(m.bin(), "-name", "kMDItemUserTags", path).Output()
	if err != nil {
		return nil, nil
	}
	return ParseUserTags(string(out)), nil
}

// ParseUserTags parses mdls kMDItemUserTags output, which looks like
//
//	kMDItemUserTags = (
//	    "Organic Chemistry",
//	    Textbook
//	)
//
// or, for files without tags, `kMDItemUserTags = (null)`.
func ParseUserTags(out string) []string {
	_, value, found := strings.Cut(out, "=")
	if !found {
		return nil
	}

	value = strings.TrimSpace(value)
	value = strings.Trim(value, "()")
	if value == "" || value == "null" {
		return nil
	}

	var tags []string
	for _, line := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		t := strings.TrimSpace(line)
		t = strings.Trim(t, `"'`)
		if t != "" && t != "null" {
			tags = append(tags, t)
		}
	}
	return tags
}
