package textcache

import (
	"path/filepath"
	"testing"
)

func openCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	c := openCache(t)

	if err := c.Put("abc123", "extracted body text"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get("abc123")
	if !ok {
		t.Fatal("Get() should find the stored checksum")
	}
	if got != "extracted body text" {
		t.Errorf("Get() = %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	c := openCache(t)

	if _, ok := c.Get("nope"); ok {
		t.Error("Get() should miss an unknown checksum")
	}
}

func TestPutReplaces(t *testing.T) {
	c := openCache(t)

	if err := c.Put("abc123", "first"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("abc123", "second"); err != nil {
		t.Fatalf("Put() on existing checksum error = %v", err)
	}

	if got, _ := c.Get("abc123"); got != "second" {
		t.Errorf("Get() = %q, want second", got)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	if err := c.Put("x", "y"); err != nil {
		t.Errorf("Put() error = %v", err)
	}
}
