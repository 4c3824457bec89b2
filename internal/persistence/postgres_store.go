package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ledgerpro/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps each slot as one JSONB row in ledger_snapshots. The
// table is created by db.Migrate.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, slot Slot) (core.Snapshot, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		"SELECT document FROM ledger_snapshots WHERE slot = $1", string(slot),
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load %s snapshot: %w", slot, err)
	}

	var snap core.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %s slot: %v", ErrInvalidSnapshot, slot, err)
	}
	return snap, nil
}

func (s *PostgresStore) Save(ctx context.Context, slot Slot, snap core.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO ledger_snapshots (slot, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`, string(slot), doc)
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", slot, err)
	}
	return nil
}
