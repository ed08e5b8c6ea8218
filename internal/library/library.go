// Package library loads a library's manifest and merged vocabulary. A
// library is a directory tree of PDFs with a manifest at its root naming
// the vocabulary, history, and bibliography files.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/myshevchuk/borax-cli/internal/vocab"
)

// Manifest file names, in lookup order.
var manifestNames = []string{
	"borax-library.toml",
	"borax-library.yaml",
	"borax-library.json",
}

// Default relative paths used when the manifest omits them.
const (
	DefaultVocabFile   = "vocab.json"
	DefaultHistoryFile = "tag_history.json"
	DefaultBibFile     = "library.bib"
	DefaultCacheFile   = ".borax-cache.db"
)

// Manifest is the on-disk library manifest.
type Manifest struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Description string `toml:"description" yaml:"description" json:"description"`
	Vocab       string `toml:"vocab,omitempty" yaml:"vocab,omitempty" json:"vocab,omitempty"`
	History     string `toml:"history,omitempty" yaml:"history,omitempty" json:"history,omitempty"`
	Bib         string `toml:"bib,omitempty" yaml:"bib,omitempty" json:"bib,omitempty"`
	Cache       string `toml:"cache,omitempty" yaml:"cache,omitempty" json:"cache,omitempty"`
}

// Library is an opened library: manifest values resolved against the root,
// with the custom vocabulary merged over the embedded default.
type Library struct {
	Root        string
	Name        string
	Description string
	Vocab       vocab.Vocabulary
	VocabPath   string
	HistoryPath string
	BibPath     string
	CachePath   string
}

// Open resolves and loads the library rooted at the given path. A missing
// manifest is a configuration error; nothing is processed without one.
func Open(root string) (*Library, error) {
	abs, err := filepath.Abs(expandTilde(root))
	if err != nil {
		return nil, fmt.Errorf("resolving library path: %w", err)
	}

	manifest, err := loadManifest(abs)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Root:        abs,
		Name:        manifest.Name,
		Description: manifest.Description,
	}
	if lib.Name == "" {
		lib.Name = filepath.Base(abs)
	}

	vocabRel := manifest.Vocab
	if vocabRel == "" {
		vocabRel = defaultVocabName(abs)
	}
	lib.VocabPath = filepath.Join(abs, vocabRel)
	lib.HistoryPath = filepath.Join(abs, orDefault(manifest.History, DefaultHistoryFile))
	lib.BibPath = filepath.Join(abs, orDefault(manifest.Bib, DefaultBibFile))
	lib.CachePath = filepath.Join(abs, orDefault(manifest.Cache, DefaultCacheFile))

	def, err := vocab.Default()
	if err != nil {
		return nil, err
	}
	custom, err := vocab.LoadFile(lib.VocabPath)
	if err != nil {
		return nil, err
	}
	lib.Vocab = vocab.Merge(def, custom)

	return lib, nil
}

// loadManifest finds and parses the first manifest present in root.
func loadManifest(root string) (*Manifest, error) {
	for _, name := range manifestNames {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading manifest: %w", err)
		}

		var m Manifest
		switch strings.ToLower(filepath.Ext(name)) {
		case ".toml":
			err = toml.Unmarshal(data, &m)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &m)
		default:
			err = json.Unmarshal(data, &m)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
		return &m, nil
	}
	return nil, fmt.Errorf("no library manifest (%s) found in %s",
		strings.Join(manifestNames, ", "), root)
}

// defaultVocabName prefers an existing vocab.yaml or vocab.yml, falling
// back to vocab.json.
func defaultVocabName(root string) string {
	for _, name := range []string{"vocab.yaml", "vocab.yml"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return name
		}
	}
	return DefaultVocabFile
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// expandTilde expands a leading ~ to the user's home directory.
func expandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
