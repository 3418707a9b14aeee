// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package persist reads and writes the state snapshot on disk.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielhkuo/secretary/state"
)

const (
	stateDirMode    = 0o700
	stateFileMode   = 0o600
	tempFilePattern = ".secretary-*.json.tmp"
)

// FileStore persists state snapshots as JSON. Writes go to a temp file
// in the same directory followed by a rename, so readers never see a
// partially written canonical file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Load reads the snapshot from disk. The second return is false when no
// snapshot file exists yet.
func (f *FileStore) Load() (state.Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state.Snapshot{}, false, nil
		}
		return state.Snapshot{}, false, fmt.Errorf("read state file: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return state.Snapshot{}, false, fmt.Errorf("decode state file: %w", err)
	}
	return snap, true, nil
}

// Save atomically replaces the snapshot file.
func (f *FileStore) Save(snap state.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.path), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state snapshot: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(f.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false
	return nil
}

// WriteIfDirty persists the store's snapshot when anything changed since
// the last successful write. The dirty flag is cleared atomically with
// taking the snapshot and re-set if the write fails, so a mutation is
// never silently dropped. Returns whether a write happened.
func WriteIfDirty(s *state.Store, f *FileStore) (bool, error) {
	snap, dirty := s.FlushSnapshot()
	if !dirty {
		return false, nil
	}
	if err := f.Save(snap); err != nil {
		s.MarkDirty()
		return false, err
	}
	return true, nil
}
