// Package cache stores compiled template output on disk, keyed by source
// content, so unchanged templates survive rebuilds without recompiling.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// DefaultDir is the project-local cache location.
	DefaultDir = ".pugx-cache"

	indexVersion = "1"
	indexFile    = "index.json"
	artifactsDir = "artifacts"
)

// Cache is a content-addressed store of compiled templates.
type Cache struct {
	mu         sync.Mutex
	dir        string
	maxEntries int
	maxAge     time.Duration
	entries    map[string]*entry
	stats      Stats
}

type entry struct {
	Key        string    `json:"key"`
	File       string    `json:"file"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
}

type index struct {
	Version string            `json:"version"`
	Entries map[string]*entry `json:"entries"`
}

// Stats reports counters for one cache session.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Open loads the cache under dir, creating it if needed. A corrupt or
// outdated index is discarded rather than reported.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, artifactsDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:        dir,
		maxEntries: 4096,
		maxAge:     7 * 24 * time.Hour,
		entries:    make(map[string]*entry),
	}

	if data, err := os.ReadFile(filepath.Join(dir, indexFile)); err == nil {
		var idx index
		if json.Unmarshal(data, &idx) == nil && idx.Version == indexVersion && idx.Entries != nil {
			c.entries = idx.Entries
		}
	}
	c.pruneExpired()

	return c, nil
}

// Key hashes the given parts into a cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return "", false
	}

	data, err := os.ReadFile(filepath.Join(c.dir, artifactsDir, e.File))
	if err != nil {
		// Artifact lost outside our control; forget the entry.
		delete(c.entries, key)
		c.stats.Misses++
		return "", false
	}

	e.LastAccess = time.Now()
	c.stats.Hits++
	return string(data), true
}

// Put stores output under key, evicting the least recently used entries
// when the cache grows past its limit.
func (c *Cache) Put(key, output string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file := key[:16] + ".jsx"
	path := filepath.Join(c.dir, artifactsDir, file)
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write cache artifact: %w", err)
	}

	now := time.Now()
	c.entries[key] = &entry{Key: key, File: file, Created: now, LastAccess: now}
	c.evict()
	return nil
}

// Clear removes every cached artifact and resets the session counters.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, artifactsDir)); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	c.entries = make(map[string]*entry)
	c.stats = Stats{}
	return os.MkdirAll(filepath.Join(c.dir, artifactsDir), 0755)
}

// Stats returns hit and miss counts for the current session.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Close writes the index back to disk.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(index{Version: indexVersion, Entries: c.entries}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, indexFile), data, 0644)
}

func (c *Cache) pruneExpired() {
	for key, e := range c.entries {
		if time.Since(e.Created) > c.maxAge {
			c.removeEntry(key, e)
		}
	}
}

func (c *Cache) evict() {
	for len(c.entries) > c.maxEntries {
		var oldestKey string
		var oldest *entry
		for key, e := range c.entries {
			if oldest == nil || e.LastAccess.Before(oldest.LastAccess) {
				oldestKey = key
				oldest = e
			}
		}
		c.removeEntry(oldestKey, oldest)
	}
}

func (c *Cache) removeEntry(key string, e *entry) {
	if err := os.Remove(filepath.Join(c.dir, artifactsDir, e.File)); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to remove cache artifact %s: %v\n", e.File, err)
	}
	delete(c.entries, key)
}
