// Package vocab models the controlled vocabulary used to tag a library:
// discipline terms matched against folder names, closed sets of document
// types and levels, and grouped keywords scored against extracted text.
package vocab

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_vocab.yaml
var defaultVocabYAML []byte

// Discipline is one subject area with its nested subfields.
type Discipline struct {
	Subfields map[string][]string `yaml:"Subfields" json:"Subfields"`
}

// Vocabulary is the full controlled vocabulary as loaded from disk.
type Vocabulary struct {
	Disciplines   map[string]Discipline `yaml:"Disciplines" json:"Disciplines"`
	DocumentTypes []string              `yaml:"Document_Types" json:"Document_Types"`
	Levels        []string              `yaml:"Levels" json:"Levels"`
	Keywords      map[string][]string   `yaml:"Keywords" json:"Keywords"`
}

// Set is a string membership set.
type Set map[string]struct{}

// Contains reports whether s holds v.
func (s Set) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Terms returns the members of s sorted alphabetically.
func (s Set) Terms() []string {
	terms := make([]string, 0, len(s))
	for t := range s {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Index is the flattened view of a Vocabulary used by the tagging engine.
// Re-deriving it from the same Vocabulary yields identical sets.
type Index struct {
	DisciplineTerms Set
	DocumentTypes   Set
	Levels          Set
	Keywords        Set // lowercase
}

// Default returns the vocabulary embedded in the binary.
func Default() (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(defaultVocabYAML, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing embedded default vocabulary: %w", err)
	}
	return v, nil
}

// LoadFile loads a vocabulary from a YAML or JSON file, selected by
// extension. A missing file yields an empty vocabulary, not an error, so a
// library without a custom vocabulary falls back to the default cleanly.
func LoadFile(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Vocabulary{}, nil
		}
		return Vocabulary{}, fmt.Errorf("reading vocabulary: %w", err)
	}

	var v Vocabulary
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return Vocabulary{}, fmt.Errorf("parsing vocabulary %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &v); err != nil {
			return Vocabulary{}, fmt.Errorf("parsing vocabulary %s: %w", path, err)
		}
	}
	return v, nil
}

// Merge combines a custom vocabulary into the default one.
// List sections (Document_Types, Levels) become sorted unions. Disciplines
// are overridden or extended key by key by the custom side. Keyword groups
// are unioned per group key.
func Merge(def, custom Vocabulary) Vocabulary {
	merged := Vocabulary{
		DocumentTypes: unionSorted(def.DocumentTypes, custom.DocumentTypes),
		Levels:        unionSorted(def.Levels, custom.Levels),
		Disciplines:   make(map[string]Discipline),
		Keywords:      make(map[string][]string),
	}

	for name, d := range def.Disciplines {
		merged.Disciplines[name] = d
	}
	for name, d := range custom.Disciplines {
		merged.Disciplines[name] = d
	}

	for group := range def.Keywords {
		merged.Keywords[group] = unionSorted(def.Keywords[group], custom.Keywords[group])
	}
	for group, kws := range custom.Keywords {
		if _, ok := merged.Keywords[group]; !ok {
			merged.Keywords[group] = unionSorted(nil, kws)
		}
	}

	return merged
}

// Flatten derives the four index sets from v.
func (v Vocabulary) Flatten() Index {
	idx := Index{
		DisciplineTerms: make(Set),
		DocumentTypes:   make(Set),
		Levels:          make(Set),
		Keywords:        make(Set),
	}

	for name, d := range v.Disciplines {
		idx.DisciplineTerms[name] = struct{}{}
		for sub, terms := range d.Subfields {
			idx.DisciplineTerms[sub] = struct{}{}
			for _, t := range terms {
				idx.DisciplineTerms[t] = struct{}{}
			}
		}
	}

	for _, t := range v.DocumentTypes {
		idx.DocumentTypes[t] = struct{}{}
	}
	for _, l := range v.Levels {
		idx.Levels[l] = struct{}{}
	}
	for _, kws := range v.Keywords {
		for _, kw := range kws {
			idx.Keywords[strings.ToLower(kw)] = struct{}{}
		}
	}

	return idx
}

// unionSorted returns the sorted, de-duplicated union of a and b.
func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		seen[s] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
