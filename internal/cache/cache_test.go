package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	key := Key("Page", "p hello\n")
	if _, ok := c.Get(key); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}
	if err := c.Put(key, "<p>hello</p>\n"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	out, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() after Put() reported a miss")
	}
	if out != "<p>hello</p>\n" {
		t.Errorf("Get() = %q", out)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestKeyDistinguishesParts(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("keys with different part boundaries must not collide")
	}
	if Key("x") != Key("x") {
		t.Error("identical inputs must produce identical keys")
	}
}

func TestIndexPersists(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	key := Key("Index", "div\n")
	if err := c.Put(key, "<div />\n"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	out, ok := reopened.Get(key)
	if !ok || out != "<div />\n" {
		t.Errorf("Get() after reopen = %q, %v", out, ok)
	}
}

func TestCorruptIndexStartsFresh(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, indexFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := c.Stats().Entries; got != 0 {
		t.Errorf("entries after corrupt index = %d, want 0", got)
	}
}

func TestMissingArtifactIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	key := Key("Gone")
	if err := c.Put(key, "x"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := os.Remove(filepath.Join(dir, artifactsDir, key[:16]+".jsx")); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(key); ok {
		t.Error("Get() reported a hit for a deleted artifact")
	}
	if got := c.Stats().Entries; got != 0 {
		t.Errorf("entries after lost artifact = %d, want 0", got)
	}
}

func TestEvictionKeepsRecentEntries(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.maxEntries = 2

	old := Key("old")
	mid := Key("mid")
	if err := c.Put(old, "old"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(mid, "mid"); err != nil {
		t.Fatal(err)
	}
	// Touch the oldest entry so the middle one becomes least recently used.
	if _, ok := c.Get(old); !ok {
		t.Fatal("expected hit")
	}
	if err := c.Put(Key("new"), "new"); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(mid); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get(old); !ok {
		t.Error("recently used entry was evicted")
	}
}

func TestClear(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.Put(Key("a"), "a"); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := c.Get(Key("a")); ok {
		t.Error("entry survived Clear()")
	}
}
