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
	flush, err := logger.Setup(cfg.LoggerConfig())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer flush()

	cli.Execute(context.Background(), func(ctx context.Context) (*bootstrap.Runtime, error) {
		return bootstrap.Open(ctx, cfg)
	})
}
