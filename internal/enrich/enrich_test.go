package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromDOI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works/10.1234/test" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"message": {
				"title": ["Advanced Buffer Chemistry"],
				"author": [
					{"family": "Smith", "given": "Jane"},
					{"family": "Doe"}
				],
				"issued": {"date-parts": [[2019, 4]]},
				"publisher": "Acme Press"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithCrossRefURL(srv.URL))
	meta, err := c.FromDOI(context.Background(), "10.1234/test")
	if err != nil {
		t.Fatalf("FromDOI() error = %v", err)
	}

	if meta.Title != "Advanced Buffer Chemistry" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Smith, Jane, Doe" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Year != "2019" {
		t.Errorf("Year = %q", meta.Year)
	}
	if meta.Publisher != "Acme Press" {
		t.Errorf("Publisher = %q", meta.Publisher)
	}
	if meta.DOI != "10.1234/test" {
		t.Errorf("DOI = %q", meta.DOI)
	}
}

func TestFromDOI_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithCrossRefURL(srv.URL))
	if _, err := c.FromDOI(context.Background(), "10.9999/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FromDOI() error = %v, want ErrNotFound", err)
	}
}

func TestFromDOI_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithCrossRefURL(srv.URL))
	if _, err := c.FromDOI(context.Background(), "10.1234/test"); !errors.Is(err, ErrAPIError) {
		t.Errorf("FromDOI() error = %v, want ErrAPIError", err)
	}
}

func TestFromDOI_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(WithCrossRefURL(srv.URL))
	if _, err := c.FromDOI(context.Background(), "10.1234/test"); !errors.Is(err, ErrAPIError) {
		t.Errorf("FromDOI() error = %v, want ErrAPIError", err)
	}
}

func TestFromDOI_Empty(t *testing.T) {
	c := NewClient()
	if _, err := c.FromDOI(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("FromDOI(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestFromISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("bibkeys"); got != "ISBN:9780123456789" {
			t.Errorf("bibkeys = %q", got)
		}
		w.Write([]byte(`{
			"ISBN:9780123456789": {
				"title": "Organic Synthesis",
				"authors": [{"name": "Pat Jones"}],
				"publishers": [{"name": "Acme Press"}],
				"publish_date": "2015",
				"edition_name": "3rd ed."
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithOpenLibraryURL(srv.URL))
	meta, err := c.FromISBN(context.Background(), "9780123456789")
	if err != nil {
		t.Fatalf("FromISBN() error = %v", err)
	}

	if meta.Title != "Organic Synthesis" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Pat Jones" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Publisher != "Acme Press" {
		t.Errorf("Publisher = %q", meta.Publisher)
	}
	if meta.Year != "2015" {
		t.Errorf("Year = %q", meta.Year)
	}
	if meta.Edition != "3rd ed." {
		t.Errorf("Edition = %q", meta.Edition)
	}
	if meta.ISBN != "9780123456789" {
		t.Errorf("ISBN = %q", meta.ISBN)
	}
}

func TestFromISBN_UnknownISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) // OpenLibrary omits unknown keys
	}))
	defer srv.Close()

	c := NewClient(WithOpenLibraryURL(srv.URL))
	if _, err := c.FromISBN(context.Background(), "0000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FromISBN() error = %v, want ErrNotFound", err)
	}
}
