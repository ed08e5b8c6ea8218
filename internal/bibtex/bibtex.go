// Package bibtex builds bibliographic records for library PDFs from their
// embedded metadata, optionally enriched by network lookups, and appends
// them to a per-library .bib file.
package bibtex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/myshevchuk/borax-cli/internal/enrich"
	"github.com/myshevchuk/borax-cli/internal/metadata"
	"github.com/myshevchuk/borax-cli/internal/pdftext"
)

// metaFields are the embedded fields harvested for an entry.
var metaFields = []string{
	"Title", "Author", "Subject",
	"PDF:PublicationYear", "PDF:Edition", "PDF:Volume",
	"PDF:Publisher", "PDF:ISBN", "PDF:DOI",
	"XMP:Publisher", "XMP:Identifier",
}

// Enricher looks up bibliographic metadata by identifier. Both methods
// degrade to an error that the exporter treats as "no enrichment".
type Enricher interface {
	FromDOI(ctx context.Context, doi string) (enrich.Metadata, error)
	FromISBN(ctx context.Context, isbn string) (enrich.Metadata, error)
}

// Exporter produces BibTeX entries for a library.
type Exporter struct {
	Meta    metadata.Reader
	Enrich  Enricher // optional
	ScanDOI bool     // scan PDF text for a DOI when metadata has none

	Warnf func(format string, args ...any)
}

// Fields is a resolved set of entry fields.
type Fields struct {
	Title     string
	Author    string
	Subject   string
	Year      string
	Edition   string
	Volume    string
	Publisher string
	ISBN      string
	DOI       string
}

// ExportLibrary walks the library and appends an entry for every PDF not
// already present in the bibliography. It returns the number of entries
// added. Per-file failures are warnings; the walk continues.
func (x *Exporter) ExportLibrary(ctx context.Context, root, bibPath string) (int, error) {
	added := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return err
		}
		ok, exportErr := x.ExportFile(ctx, path, bibPath)
		if exportErr != nil {
			x.warnf("exporting %s: %v", path, exportErr)
			return nil
		}
		if ok {
			added++
		}
		return nil
	})
	if err != nil {
		return added, fmt.Errorf("walking library: %w", err)
	}
	return added, nil
}

// ExportFile builds and appends one entry. It reports false when the
// bibliography already references the file.
func (x *Exporter) ExportFile(ctx context.Context, path, bibPath string) (bool, error) {
	fields := x.harvest(path)
	x.enrichFields(ctx, path, &fields)
	_, entry := BuildEntry(path, fields)
	return AppendEntry(bibPath, path, entry)
}

// harvest reads the embedded metadata fields for an entry. A failed read
// yields empty fields; the entry falls back to the filename.
func (x *Exporter) harvest(path string) Fields {
	meta, err := x.Meta.Fields(path, metaFields...)
	if err != nil {
		x.warnf("reading metadata of %s: %v", path, err)
		meta = map[string]string{}
	}

	return Fields{
		Title:     lookupAny(meta, "Title", "XMP:Title"),
		Author:    lookupAny(meta, "Author", "XMP:Creator", "DC:Creator"),
		Subject:   lookupAny(meta, "Subject", "Keywords"),
		Year:      lookupAny(meta, "PDF:PublicationYear"),
		Edition:   lookupAny(meta, "PDF:Edition"),
		Volume:    lookupAny(meta, "PDF:Volume", "XMP:Volume"),
		Publisher: lookupAny(meta, "PDF:Publisher", "XMP:Publisher", "DC:Publisher"),
		ISBN:      lookupAny(meta, "PDF:ISBN"),
		DOI:       lookupAny(meta, "PDF:DOI", "XMP:Identifier"),
	}
}

// enrichFields fills empty fields from a network lookup keyed by DOI, or
// ISBN when no DOI is known. With no embedded DOI the PDF text itself is
// scanned for one. Every failure leaves the fields as they were.
func (x *Exporter) enrichFields(ctx context.Context, path string, f *Fields) {
	if f.DOI == "" && x.ScanDOI {
		f.DOI = pdftext.ExtractDOI(path)
	}
	if x.Enrich == nil {
		return
	}

	var extra enrich.Metadata
	var err error
	switch {
	case f.DOI != "":
		extra, err = x.Enrich.FromDOI(ctx, f.DOI)
	case f.ISBN != "":
		extra, err = x.Enrich.FromISBN(ctx, f.ISBN)
	default:
		return
	}
	if err != nil {
		x.warnf("enriching %s: %v", filepath.Base(path), err)
		return
	}

	fillEmpty(&f.Title, extra.Title)
	fillEmpty(&f.Author, extra.Author)
	fillEmpty(&f.Year, extra.Year)
	fillEmpty(&f.Publisher, extra.Publisher)
	fillEmpty(&f.Edition, extra.Edition)
	fillEmpty(&f.ISBN, extra.ISBN)
	fillEmpty(&f.DOI, extra.DOI)
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeKey strips everything but letters and digits from a citation key.
func SanitizeKey(s string) string {
	return keySanitizer.ReplaceAllString(s, "")
}

// BuildEntry formats one BibTeX entry for a file. Entries with a publisher
// become @book, everything else @misc. The key is first author + year +
// first title word, sanitized and capped at 50 characters.
func BuildEntry(path string, f Fields) (key, entry string) {
	title := f.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	author := f.Author
	if author == "" {
		author = "Unknown"
	}
	year := f.Year
	if year == "" {
		year = fmt.Sprint(time.Now().Year())
	}

	key = SanitizeKey(firstAuthor(author) + year + firstWord(title))
	if len(key) > 50 {
		key = key[:50]
	}

	entryType := "misc"
	if f.Publisher != "" {
		entryType = "book"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, key)
	fmt.Fprintf(&b, "  title     = {%s},\n", escapeLatex(title))
	fmt.Fprintf(&b, "  author    = {%s},\n", escapeLatex(author))
	fmt.Fprintf(&b, "  year      = {%s},\n", year)
	if f.Edition != "" {
		fmt.Fprintf(&b, "  edition   = {%s},\n", escapeLatex(f.Edition))
	}
	if f.Volume != "" {
		fmt.Fprintf(&b, "  volume    = {%s},\n", f.Volume)
	}
	if f.Publisher != "" {
		fmt.Fprintf(&b, "  publisher = {%s},\n", escapeLatex(f.Publisher))
	}
	if f.ISBN != "" {
		fmt.Fprintf(&b, "  isbn      = {%s},\n", f.ISBN)
	}
	if f.DOI != "" {
		fmt.Fprintf(&b, "  doi       = {%s},\n", f.DOI)
	}
	if f.Subject != "" {
		fmt.Fprintf(&b, "  keywords  = {%s},\n", escapeLatex(f.Subject))
	}
	fmt.Fprintf(&b, "  file      = {%s}\n", path)
	b.WriteString("}\n\n")

	return key, b.String()
}

// AppendEntry appends an entry to the bibliography unless the file path is
// already referenced there. It reports whether the entry was added.
func AppendEntry(bibPath, filePath, entry string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(bibPath), 0755); err != nil {
		return false, fmt.Errorf("creating bibliography directory: %w", err)
	}

	existing, err := os.ReadFile(bibPath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("reading bibliography: %w", err)
	}
	if strings.Contains(string(existing), filePath) {
		return false, nil
	}

	f, err := os.OpenFile(bibPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return false, fmt.Errorf("writing bibliography entry: %w", err)
	}
	return true, nil
}

func (x *Exporter) warnf(format string, args ...any) {
	if x.Warnf != nil {
		x.Warnf(format, args...)
	}
}

func lookupAny(meta map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := metadata.Lookup(meta, k); ok && v != "" {
			return v
		}
	}
	return ""
}

func fillEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func firstAuthor(author string) string {
	if i := strings.Index(author, ","); i != -1 {
		return author[:i]
	}
	if parts := strings.Fields(author); len(parts) > 0 {
		return parts[0]
	}
	return "anon"
}

func firstWord(s string) string {
	if parts := strings.Fields(s); len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// escapeLatex escapes special LaTeX characters. The ampersand must come
// first so later escapes do not double up.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
