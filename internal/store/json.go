// Package store persists the job collection as a flat JSON array,
// matching the file format consumed by the desktop shell and by
// earlier versions of the tool. No database: one ordered array.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// SaveJSON writes jobs atomically (tmp + rename).
func SaveJSON(path string, jobs any) error {
	b, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadJSON reads a job array; a missing file is an empty collection.
func LoadJSON[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
