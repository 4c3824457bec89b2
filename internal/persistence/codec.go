package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ledgerpro/internal/core"
)

// Encode renders a snapshot as the indented JSON document used for exports,
// backup files and the file store.
func Encode(snap core.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses an exported document. It must be a JSON object carrying at
// least inventory and settings, and it must build into a book without
// duplicate ids.
func Decode(data []byte) (core.Snapshot, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for _, key := range []string{"inventory", "settings"} {
		raw, ok := probe[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return core.Snapshot{}, fmt.Errorf("%w: missing %q", ErrInvalidSnapshot, key)
		}
	}

	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if _, err := core.BookFromSnapshot(snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}
