// Package setcache persists merged set records to disk, one JSON file
// per set code. Set data changes rarely and is idempotent per code, so
// concurrent writers are tolerated: last write wins.
package setcache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmancini/MTG-Proxyshop/internal/scryfall"
)

// Store is a file-backed scryfall.SetStore rooted at one directory.
type Store struct {
	dir string
}

// New creates a store writing under dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cache file path for a set code, e.g. SET-MH2.json.
func (s *Store) Path(code string) string {
	return filepath.Join(s.dir, fmt.Sprintf("SET-%s.json", strings.ToUpper(code)))
}

// Load reads a previously persisted record. A missing or unreadable
// file is an ordinary cache miss.
func (s *Store) Load(code string) (scryfall.SetRecord, bool) {
	data, err := os.ReadFile(s.Path(code))
	if err != nil {
		return nil, false
	}

	var rec scryfall.SetRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("Discarding unreadable set cache file", "set", code, "error", err)
		return nil, false
	}
	return rec, true
}

// Save persists a merged record, creating the directory as needed.
func (s *Store) Save(code string, rec scryfall.SetRecord) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create set data directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal set data: %w", err)
	}

	if err := os.WriteFile(s.Path(code), data, 0644); err != nil {
		return fmt.Errorf("failed to write set data: %w", err)
	}
	return nil
}
