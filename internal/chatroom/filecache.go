package chatroom

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// cacheTTL bounds how long a loaded file may be served from memory.
const cacheTTL = 60 * time.Second

type cacheEntry struct {
	data     []byte
	loadedAt time.Time
}

// fileCache is a short-TTL read cache over JSON files. Writes go through
// the cache so a read immediately after a write sees the new contents.
type fileCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newFileCache() *fileCache {
	return &fileCache{entries: make(map[string]cacheEntry)}
}

// load unmarshals the file at path into v, serving from cache when fresh.
// Missing or corrupt files return an error so the caller can substitute
// a default value.
func (c *fileCache) load(path string, v any) error {
	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()

	if ok && time.Since(entry.loadedAt) < cacheTTL {
		return json.Unmarshal(entry.data, v)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{data: data, loadedAt: time.Now()}
	c.mu.Unlock()
	return nil
}

// save marshals v to path via a temp file rename and refreshes the cache.
func (c *fileCache) save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{data: data, loadedAt: time.Now()}
	c.mu.Unlock()
	return nil
}

// sweep evicts entries past the TTL and reports how many were dropped.
func (c *fileCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for path, entry := range c.entries {
		if time.Since(entry.loadedAt) >= cacheTTL {
			delete(c.entries, path)
			dropped++
		}
	}
	return dropped
}
