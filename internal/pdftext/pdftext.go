// Package pdftext extracts text from PDF files for keyword scoring and DOI
// discovery. Extraction is best effort: scanned or image-only documents
// yield empty text, never an error that would abort a batch.
package pdftext

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor implements full-text extraction over the pure-Go PDF reader.
type Extractor struct {
	// MaxPages bounds extraction; 0 means all pages.
	MaxPages int
}

// Text returns the lowercase full text of a PDF, or an empty string when
// the file cannot be parsed. The PDF reader panics on some malformed files,
// so extraction runs behind a recover.
func (e *Extractor) Text(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", nil
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", nil
	}
	defer f.Close()

	maxPages := r.NumPage()
	if e.MaxPages > 0 && e.MaxPages < maxPages {
		maxPages = e.MaxPages
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	return strings.ToLower(b.String()), nil
}
