// Package knowledge serves the markdown articles the coach links from
// plans. Articles are read once and cached; a missing article is an
// ErrNotFound, not a failure of the base.
package knowledge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ErrNotFound is returned for slugs with no matching article.
var ErrNotFound = errors.New("knowledge article not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Base is a cached directory of markdown articles keyed by slug
// (filename without extension).
type Base struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]string
}

// NewBase creates a knowledge base over dir. The directory may be empty
// or absent; lookups then return ErrNotFound.
func NewBase(dir string) *Base {
	return &Base{
		dir:   dir,
		cache: make(map[string]string),
	}
}

// Get returns the markdown body for a slug. Slugs are restricted to
// lowercase kebab-case so a request can never traverse out of the
// article directory.
func (b *Base) Get(slug string) (string, error) {
	if !slugPattern.MatchString(slug) {
		return "", ErrNotFound
	}

	b.mu.RLock()
	cached, ok := b.cache[slug]
	b.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := os.ReadFile(filepath.Join(b.dir, slug+".md"))
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read article %s: %w", slug, err)
	}

	body := string(data)
	b.mu.Lock()
	b.cache[slug] = body
	b.mu.Unlock()
	return body, nil
}

// Slugs lists available article slugs, unsorted.
func (b *Base) Slugs() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		slug := strings.TrimSuffix(name, ".md")
		if slugPattern.MatchString(slug) {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}
