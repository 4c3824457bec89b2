package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgerpro/internal/adapters/web"
	"ledgerpro/internal/bootstrap"
	"ledgerpro/internal/logger"
	"ledgerpro/internal/persistence"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context(), rt())
		},
	}
}

// Serve runs the HTTP API until ctx is cancelled or SIGINT/SIGTERM arrives.
// The backup scheduler runs alongside it and stops with it.
func Serve(ctx context.Context, rt *bootstrap.Runtime) error {
	cfg := rt.Config
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}
	log := logger.WithComponent("server")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := persistence.NewScheduler(rt.Service, cfg.BackupDir, logger.WithComponent("backup"))
	go scheduler.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           web.NewHandler(rt.Service, cfg.AllowedOrigins, cfg.JWTSecret, logger.WithComponent("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("backup_dir", cfg.BackupDir).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
