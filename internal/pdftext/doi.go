package pdftext

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiPattern matches DOIs: 10.<registrant>/<suffix>.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// doiScanPages is how many leading pages to scan; DOIs sit on the first
// page of nearly every article.
const doiScanPages = 3

// ExtractDOI scans the first pages of a PDF for a DOI. A missing DOI or an
// unparseable file both return an empty string.
func ExtractDOI(path string) string {
	defer func() { recover() }()

	f, r, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	maxPages := doiScanPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := FindDOI(text); doi != "" {
			return doi
		}
	}
	return ""
}

// FindDOI returns the first valid-looking DOI in text, with trailing
// punctuation stripped.
func FindDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}
