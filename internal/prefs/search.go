package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/propdesk/internal/store"
)

const searchFile = "last_search.json"

// LastSearch is the query and filters restored into the search form.
type LastSearch struct {
	Query   string        `json:"query"`
	Filters store.Filters `json:"filters"`
}

func searchPath(dir string) (string, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "propdesk")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, searchFile), nil
}

// SaveLastSearch writes s atomically under dir.
func SaveLastSearch(dir string, s LastSearch) error {
	path, err := searchPath(dir)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadLastSearch returns the saved search, or nil when none was saved.
func LoadLastSearch(dir string) (*LastSearch, error) {
	path, err := searchPath(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s LastSearch
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}
