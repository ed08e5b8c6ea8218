// Package enrich fetches bibliographic metadata from CrossRef (by DOI) and
// OpenLibrary (by ISBN). Enrichment is best effort: callers treat any error
// as "no enrichment" and keep whatever local metadata they already have.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds every lookup.
	DefaultTimeout = 10 * time.Second

	// RateLimit is 2 requests per second, polite-pool territory for both
	// services.
	RateLimit = 2.0

	crossRefBaseURL    = "https://api.crossref.org"
	openLibraryBaseURL = "https://openlibrary.org"
)

// Errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrAPIError     = errors.New("metadata API error")
	ErrNetworkError = errors.New("network error")
)

// Metadata is the enrichment result, shaped to slot into a BibTeX entry.
type Metadata struct {
	Title     string
	Author    string
	Year      string
	Publisher string
	Edition   string
	ISBN      string
	DOI       string
}

// Client is a rate-limited HTTP client for the enrichment services.
type Client struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	crossRefURL    string
	openLibraryURL string
	mailto         string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCrossRefURL sets a custom CrossRef base URL (for testing).
func WithCrossRefURL(u string) ClientOption {
	return func(c *Client) {
		c.crossRefURL = u
	}
}

// WithOpenLibraryURL sets a custom OpenLibrary base URL (for testing).
func WithOpenLibraryURL(u string) ClientOption {
	return func(c *Client) {
		c.openLibraryURL = u
	}
}

// WithMailto sets the contact address sent to CrossRef, which admits the
// client to its polite pool.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// NewClient creates an enrichment client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		limiter:        rate.NewLimiter(rate.Limit(RateLimit), 1),
		crossRefURL:    crossRefBaseURL,
		openLibraryURL: openLibraryBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// crossRefWork is the subset of the CrossRef works response we use.
type crossRefWork struct {
	Message struct {
		Title  []string `json:"title"`
		Author []struct {
			Family string `json:"family"`
			Given  string `json:"given"`
		} `json:"author"`
		Issued struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
		Publisher string `json:"publisher"`
	} `json:"message"`
}

// FromDOI fetches metadata for a DOI from CrossRef.
func (c *Client) FromDOI(ctx context.Context, doi string) (Metadata, error) {
	if doi == "" {
		return Metadata{}, ErrNotFound
	}

	var work crossRefWork
	reqURL := c.crossRefURL + "/works/" + url.PathEscape(doi)
	if c.mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.mailto)
	}
	if err := c.getJSON(ctx, reqURL, &work); err != nil {
		return Metadata{}, err
	}

	meta := Metadata{DOI: doi, Publisher: work.Message.Publisher}
	if len(work.Message.Title) > 0 {
		meta.Title = work.Message.Title[0]
	}

	var authors []string
	for _, a := range work.Message.Author {
		switch {
		case a.Family != "" && a.Given != "":
			authors = append(authors, a.Family+", "+a.Given)
		case a.Family != "":
			authors = append(authors, a.Family)
		}
	}
	meta.Author = strings.Join(authors, ", ")

	if parts := work.Message.Issued.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		meta.Year = strconv.Itoa(parts[0][0])
	}

	return meta, nil
}

// openLibraryBook is the subset of the OpenLibrary books response we use.
type openLibraryBook struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate string `json:"publish_date"`
	EditionName string `json:"edition_name"`
}

// FromISBN fetches metadata for an ISBN from OpenLibrary.
func (c *Client) FromISBN(ctx context.Context, isbn string) (Metadata, error) {
	if isbn == "" {
		return Metadata{}, ErrNotFound
	}

	key := "ISBN:" + isbn
	reqURL := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data",
		c.openLibraryURL, url.QueryEscape(key))

	books := map[string]openLibraryBook{}
	if err := c.getJSON(ctx, reqURL, &books); err != nil {
		return Metadata{}, err
	}
	book, ok := books[key]
	if !ok {
		return Metadata{}, ErrNotFound
	}

	meta := Metadata{
		Title:   book.Title,
		Year:    book.PublishDate,
		Edition: book.EditionName,
		ISBN:    isbn,
	}

	var authors, publishers []string
	for _, a := range book.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}
	for _, p := range book.Publishers {
		if p.Name != "" {
			publishers = append(publishers, p.Name)
		}
	}
	meta.Author = strings.Join(authors, ", ")
	meta.Publisher = strings.Join(publishers, ", ")

	return meta, nil
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, reqURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "borax-cli")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrAPIError, err)
	}
	return nil
}
