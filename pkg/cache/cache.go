// Package cache persists fetched page content between runs so repeated
// invocations skip the network entirely.
package cache

import (
	"fmt"
	"os"
)

// PageCache stores cleaned page text in a single plain-text file.
type PageCache struct {
	path string
}

func New(path string) *PageCache {
	return &PageCache{path: path}
}

// Load returns the cached content and whether the cache file was usable.
// A missing or empty file means a fresh fetch is needed.
func (c *PageCache) Load() (string, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// Save writes content as the new cache, replacing any previous one.
func (c *PageCache) Save(content string) error {
	if err := os.WriteFile(c.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
