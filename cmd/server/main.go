package main

import (
	"context"
	"log"

	"ledgerpro/internal/adapters/cli"
	"ledgerpro/internal/bootstrap"
	"ledgerpro/internal/config"
	"ledgerpro/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatalf("config: %v", err)
	}
	flush, err := logger.Setup(cfg.LoggerConfig())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer flush()

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		startLog := logger.WithComponent("server")
		startLog.Fatal().Err(err).Msg("startup failed")
	}
	defer rt.Close()

	if err := cli.Serve(ctx, rt); err != nil {
		serveLog := logger.WithComponent("server")
		serveLog.Error().Err(err).Msg("server stopped")
	}
}
