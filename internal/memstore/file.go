package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the memory list as a JSON file on local disk. It is the
// default backend for single-machine deployments and the CLI.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path. Parent directories are
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the remembered entries, or an empty slice if the file does not exist.
func (s *FileStore) Load(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read memory file %s: %w", s.path, err)
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse memory file %s: %w", s.path, err)
	}
	return entries, nil
}

// Save writes the entries atomically via a temp file and rename.
func (s *FileStore) Save(ctx context.Context, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory entries: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create memory dir %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memory file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace memory file %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
