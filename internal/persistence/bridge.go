package persistence

import (
	"context"
	"errors"
	"fmt"

	"ledgerpro/internal/core"

	"github.com/rs/zerolog"
)

// Bridge moves books in and out of a SnapshotStore. It owns the auto slot
// policy so callers only ever Save and Load.
type Bridge struct {
	store SnapshotStore
	log   zerolog.Logger
}

func NewBridge(store SnapshotStore, log zerolog.Logger) *Bridge {
	return &Bridge{store: store, log: log}
}

// Load returns the stored book, or a fresh one when nothing is stored yet.
func (b *Bridge) Load(ctx context.Context) (*core.Book, error) {
	snap, err := b.store.Load(ctx, SlotCurrent)
	if errors.Is(err, ErrNoSnapshot) {
		b.log.Info().Msg("no stored ledger, starting with an empty book")
		return core.NewBook(), nil
	}
	if err != nil {
		return nil, err
	}
	book, err := core.BookFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return book, nil
}

// Save writes the current slot, and the auto slot as well when the book
// holds any data.
func (b *Bridge) Save(ctx context.Context, book *core.Book) error {
	snap := book.Snapshot()
	if err := b.store.Save(ctx, SlotCurrent, snap); err != nil {
		return err
	}
	if book.IsEmpty() {
		return nil
	}
	if err := b.store.Save(ctx, SlotAuto, snap); err != nil {
		return fmt.Errorf("auto snapshot: %w", err)
	}
	return nil
}

// LoadAuto returns the safety copy. ErrNoSnapshot means none was ever taken.
func (b *Bridge) LoadAuto(ctx context.Context) (*core.Book, error) {
	snap, err := b.store.Load(ctx, SlotAuto)
	if err != nil {
		return nil, err
	}
	book, err := core.BookFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return book, nil
}
