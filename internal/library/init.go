package library

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Prompter asks interactive questions during library initialization. It
// reads answers from In and writes prompts to Out, so tests can drive it
// with buffers.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// Ask prompts for a string answer, returning def on empty input.
func (p *Prompter) Ask(prompt, def string) string {
	suffix := ""
	if def != "" {
		suffix = fmt.Sprintf(" [%s]", def)
	}
	fmt.Fprintf(p.Out, "%s%s: ", prompt, suffix)

	answer := strings.TrimSpace(p.readLine())
	if answer == "" {
		return def
	}
	return answer
}

// AskYesNo prompts for a yes/no answer, returning def on empty input.
func (p *Prompter) AskYesNo(prompt string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.Out, "%s [%s]: ", prompt, hint)

	answer := strings.ToLower(strings.TrimSpace(p.readLine()))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}

func (p *Prompter) readLine() string {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}
	if p.scanner.Scan() {
		return p.scanner.Text()
	}
	return ""
}

// vocabTemplate is written when the user asks for a library-specific
// vocabulary; its sections mirror the default vocabulary's shape.
const vocabTemplate = `Disciplines: {}
Document_Types: []
Levels: []
Keywords: {}
`

// Init interactively creates a new library at target: a TOML manifest plus
// empty bibliography and history files, and optionally a vocabulary
// template. Existing files are left alone.
func Init(target string, p *Prompter) (*Library, error) {
	root, err := filepath.Abs(expandTilde(target))
	if err != nil {
		return nil, fmt.Errorf("resolving target path: %w", err)
	}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		if !p.AskYesNo(fmt.Sprintf("Directory %s does not exist. Create it?", root), true) {
			return nil, fmt.Errorf("aborted: %s does not exist", root)
		}
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	manifest := Manifest{
		Name:        p.Ask("Library name", filepath.Base(root)),
		Description: p.Ask("Description", ""),
		Bib:         p.Ask("BibTeX filename", DefaultBibFile),
		History:     p.Ask("History filename", DefaultHistoryFile),
	}

	createVocab := p.AskYesNo("Create a library-specific vocabulary now?", false)
	manifest.Vocab = DefaultVocabFile
	if createVocab {
		manifest.Vocab = p.Ask("Vocabulary filename", "vocab.yaml")
	}

	data, err := toml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, manifestNames[0]), data, 0644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	if err := writeIfMissing(filepath.Join(root, manifest.Bib), ""); err != nil {
		return nil, err
	}
	if err := writeIfMissing(filepath.Join(root, manifest.History), "{}\n"); err != nil {
		return nil, err
	}
	if createVocab {
		if err := writeIfMissing(filepath.Join(root, manifest.Vocab), vocabTemplate); err != nil {
			return nil, err
		}
	}

	return Open(root)
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return nil
}
