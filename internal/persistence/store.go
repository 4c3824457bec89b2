package persistence

import (
	"context"
	"errors"

	"ledgerpro/internal/core"
)

var (
	// ErrNoSnapshot is returned by Load when nothing has been stored in the slot.
	ErrNoSnapshot = errors.New("no snapshot stored")

	// ErrInvalidSnapshot is returned when a document cannot be accepted as a
	// ledger snapshot. Current state is never touched by a rejected document.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Slot names one stored copy of the book.
type Slot string

const (
	// SlotCurrent is the live book, rewritten after every change.
	SlotCurrent Slot = "current"
	// SlotAuto is the safety copy, refreshed on every save of a non-empty book
	// and left alone by Clear.
	SlotAuto Slot = "auto"
)

// SnapshotStore persists whole snapshots. Implementations: FileStore and
// PostgresStore.
type SnapshotStore interface {
	Load(ctx context.Context, slot Slot) (core.Snapshot, error)
	Save(ctx context.Context, slot Slot, snap core.Snapshot) error
}
