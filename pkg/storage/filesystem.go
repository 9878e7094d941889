package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SnapshotStore persists timetable snapshot documents as JSON files under a
// base directory. File names are supplied by the caller (the UI file picker);
// the store only sanitises them and pins the extension.
type SnapshotStore struct {
	baseDir string
}

// NewSnapshotStore ensures the base directory exists and returns a handle.
func NewSnapshotStore(baseDir string) (*SnapshotStore, error) {
	if baseDir == "" {
		baseDir = "./snapshots"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshots directory: %w", err)
	}
	return &SnapshotStore{baseDir: baseDir}, nil
}

// Save writes the snapshot payload to the named file.
func (s *SnapshotStore) Save(name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot file: %w", err)
	}
	return filepath.Base(path), nil
}

// Load reads the named snapshot file.
func (s *SnapshotStore) Load(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

// List returns the snapshot file names present in the base directory.
func (s *SnapshotStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list snapshots directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *SnapshotStore) resolve(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid snapshot file name %q", name)
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(s.baseDir, name), nil
}
