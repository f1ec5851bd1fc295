package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered diagrams as files under a root directory,
// typically the user cache dir. Each entry is a small JSON document
// carrying the artifact bytes and an optional expiry; unreadable or
// expired entries are removed on read and reported as misses, so a
// corrupted cache heals itself instead of breaking renders.
type FileCache struct {
	root string
}

// NewFileCache creates a file cache rooted at dir, creating the
// directory when needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{root: dir}, nil
}

// renderEntry is the on-disk form of one cached artifact.
type renderEntry struct {
	Output  []byte    `json:"output"`
	Expires time.Time `json:"expires,omitempty"`
}

// Get retrieves a cached artifact.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry renderEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.Expires.IsZero() && time.Now().After(entry.Expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Output, true, nil
}

// Set stores an artifact. A ttl of zero means the entry never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := renderEntry{Output: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl)
	}

	blob, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0644)
}

// Delete removes an artifact. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a cache key to its file, sharded into subdirectories
// by the first digest byte so one directory never holds every entry.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.root, sum[:2], sum[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
