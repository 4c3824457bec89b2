package main

import (
	"context"
	"fmt"
	"os"

	"ledgerpro/internal/config"
	"ledgerpro/internal/db"
)

// migrate applies the embedded schema to DATABASE_URL. The server does the
// same on startup; this is for provisioning a database ahead of time.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migration successful.")
}
