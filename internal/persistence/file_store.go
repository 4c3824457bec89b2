package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ledgerpro/internal/core"
)

// FileStore keeps each slot in a JSON file next to the configured data file:
// ledgerpro.json for the current slot, ledgerpro.auto.json for the auto slot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) slotPath(slot Slot) string {
	if slot == SlotCurrent {
		return s.path
	}
	ext := filepath.Ext(s.path)
	return strings.TrimSuffix(s.path, ext) + "." + string(slot) + ext
}

func (s *FileStore) Load(_ context.Context, slot Slot) (core.Snapshot, error) {
	data, err := os.ReadFile(s.slotPath(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return core.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read %s snapshot: %w", slot, err)
	}
	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %s slot: %v", ErrInvalidSnapshot, slot, err)
	}
	return snap, nil
}

// Save writes to a temp file in the same directory and renames it over the
// slot file, so a crash mid-write never leaves a truncated document.
func (s *FileStore) Save(_ context.Context, slot Slot, snap core.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.slotPath(slot), data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
