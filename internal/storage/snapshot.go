package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"druglabelsearch/internal/types"
)

// SaveSnapshot atomically overwrites the frontier snapshot at path. The
// snapshot is written to a temp file in the same directory and renamed into
// place so a crash mid-write never leaves a corrupt snapshot behind.
func SaveSnapshot(path string, snap types.FrontierSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".crawler_state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the snapshot at path. A missing file returns ok=false
// with no error, meaning the crawl starts fresh from its seed URL.
func LoadSnapshot(path string) (types.FrontierSnapshot, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.FrontierSnapshot{}, false, nil
		}
		return types.FrontierSnapshot{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap types.FrontierSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.FrontierSnapshot{}, false, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap, true, nil
}
