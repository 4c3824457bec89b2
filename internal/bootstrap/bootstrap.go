// Package bootstrap assembles the application service from configuration. The
// CLI, the HTTP server and the maintenance binaries all start here.
package bootstrap

import (
	"context"
	"fmt"

	"ledgerpro/internal/ai"
	"ledgerpro/internal/app"
	"ledgerpro/internal/config"
	"ledgerpro/internal/core"
	"ledgerpro/internal/db"
	"ledgerpro/internal/logger"
	"ledgerpro/internal/persistence"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Runtime is a loaded ledger behind its ApplicationService.
type Runtime struct {
	Config  *config.Config
	Service app.ApplicationService
	pool    *pgxpool.Pool
}

// Close releases the database pool, if one was opened.
func (r *Runtime) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// OpenStore returns the snapshot store selected by STORAGE_DRIVER. For the
// postgres driver the pool is returned too and migrations have been applied.
func OpenStore(ctx context.Context, cfg *config.Config) (persistence.SnapshotStore, *pgxpool.Pool, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return persistence.NewPostgresStore(pool), pool, nil
	default:
		return persistence.NewFileStore(cfg.DataFile), nil, nil
	}
}

// Open loads the stored book and wires the ledger, persistence and, when an
// API key is configured, the assistant.
func Open(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	store, pool, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	bridge := persistence.NewBridge(store, logger.WithComponent("persistence"))
	book, err := bridge.Load(ctx)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	var agent *ai.Agent
	if cfg.OpenAIAPIKey != "" {
		agent = ai.NewAgent(ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), logger.WithComponent("assistant"))
	} else {
		bootLog := logger.WithComponent("bootstrap")
		bootLog.Warn().Msg("OPENAI_API_KEY is not set, assistant disabled")
	}

	svc := app.NewAppService(core.NewLedger(book), bridge, agent, logger.WithComponent("app"))

	bootLog := logger.WithComponent("bootstrap")
	bootLog.Info().
		Str("driver", cfg.StorageDriver).
		Int("items", len(book.Inventory())).
		Int("invoices", len(book.Invoices())).
		Msg("ledger loaded")

	return &Runtime{Config: cfg, Service: svc, pool: pool}, nil
}
