// Package snapshot persists fetched school records as flat JSON files
// so an interactive session doesn't hammer the remote API. One file
// per region, whole-file overwrite on save, single writer assumed.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"collegecost-backend/lib/scorecard"
)

var ErrNotFound = fmt.Errorf("no snapshot exists for region")

type Store struct {
	dir string
}

func NewStore(dir string) Store {
	return Store{dir: dir}
}

// Path returns the file a region's snapshot lives at, whether or not
// it exists yet.
func (s Store) Path(region string) string {
	name := fmt.Sprintf("%s_school_data.json", strings.ToUpper(region))
	return filepath.Join(s.dir, name)
}

// Save writes the record list as a pretty-printed JSON array,
// replacing any prior snapshot for the region.
func (s Store) Save(region string, records []scorecard.Record) (string, error) {
	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	path := s.Path(region)
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Load reads a region's snapshot back. Returns ErrNotFound when no
// snapshot has been saved for the region.
func (s Store) Load(region string) ([]scorecard.Record, error) {
	data, err := os.ReadFile(s.Path(region))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, region)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var records []scorecard.Record
	err = json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}

// IsStale reports whether the region's snapshot is older than maxAge.
// A missing snapshot is stale.
func (s Store) IsStale(region string, maxAge time.Duration) bool {
	info, err := os.Stat(s.Path(region))
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > maxAge
}
