// Package profilecache persists the signed-in user's profile between runs so
// the app can show who is signed in before the server confirms it. It never
// stores credentials; the session itself lives in a server-set cookie.
package profilecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/naveenspark/campusnest/pkg/domain"
)

const fileName = "profile.json"

// Cache is a profile file under a directory.
type Cache struct {
	path string
}

// New returns a cache stored in dir.
func New(dir string) *Cache {
	return &Cache{path: filepath.Join(dir, fileName)}
}

// DefaultDir returns ~/.campusnest.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".campusnest"), nil
}

// Path returns the location of the profile file.
func (c *Cache) Path() string { return c.path }

// Load returns the cached profile, or nil if none was saved.
// A corrupt file is treated as absent.
func (c *Cache) Load() (*domain.UserProfile, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profilecache.Load: %w", err)
	}
	var u domain.UserProfile
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// Save writes u, replacing any previous profile.
func (c *Cache) Save(u domain.UserProfile) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("profilecache.Save: create dir: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("profilecache.Save: %w", err)
	}
	stage := c.path + ".new"
	if err := os.WriteFile(stage, data, 0600); err != nil {
		return fmt.Errorf("profilecache.Save: %w", err)
	}
	if err := os.Rename(stage, c.path); err != nil {
		os.Remove(stage) //nolint:errcheck
		return fmt.Errorf("profilecache.Save: %w", err)
	}
	return nil
}

// Clear removes the cached profile. Clearing an empty cache is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("profilecache.Clear: %w", err)
	}
	return nil
}
