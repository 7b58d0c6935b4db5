// Package cache persists catalog lookup results across runs so repeat names
// (including confirmed misses) never hit the network twice.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

type fileFormat struct {
	Weapons map[string]domain.Match `json:"weapons"`
	Perks   map[string]domain.Match `json:"perks"`
}

// Cache is an in-memory view of the persisted lookup file. It is owned by a
// single run; Flush writes the whole state back atomically.
type Cache struct {
	path    string
	weapons map[string]domain.Match
	perks   map[string]domain.Match
}

// Load reads the cache file at path. A missing file is an empty cache. A
// corrupt file is also an empty cache, but the returned diagnostic is non-nil
// so the caller can report it; the run itself continues either way.
func Load(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		weapons: map[string]domain.Match{},
		perks:   map[string]domain.Match{},
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read cache (%s): %w", path, err)
	}

	var ff fileFormat
	if err := json.Unmarshal(b, &ff); err != nil {
		return c, fmt.Errorf("cache file %s is corrupt, starting empty: %w", path, err)
	}
	if ff.Weapons != nil {
		c.weapons = ff.Weapons
	}
	if ff.Perks != nil {
		c.perks = ff.Perks
	}
	return c, nil
}

func (c *Cache) bucket(category domain.Category) map[string]domain.Match {
	switch category {
	case domain.CategoryWeapon:
		return c.weapons
	case domain.CategoryPerk:
		return c.perks
	}
	return nil
}

// Get returns the cached outcome for a normalized key, positive or negative.
func (c *Cache) Get(key string, category domain.Category) (domain.Match, bool) {
	b := c.bucket(category)
	if b == nil || key == "" {
		return domain.Match{}, false
	}
	m, ok := b[key]
	return m, ok
}

// Put records an outcome, replacing any previous entry for the key.
func (c *Cache) Put(key string, category domain.Category, m domain.Match) {
	b := c.bucket(category)
	if b == nil || key == "" {
		return
	}
	b[key] = m
}

// Len reports the number of stored entries across both categories.
func (c *Cache) Len() int {
	return len(c.weapons) + len(c.perks)
}

// Flush durably writes the cache. It is idempotent; a later flush fully
// supersedes an earlier one. The write goes through a temp file and rename so
// a crash never leaves a half-written cache behind.
func (c *Cache) Flush() error {
	ff := fileFormat{Weapons: c.weapons, Perks: c.perks}
	b, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
