// restore-backup replaces the stored ledger with one of the scheduled backup
// files in BACKUP_DIR. Without an argument it lists the available files.
//
// Usage: go run ./cmd/restore-backup [file|index]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"ledgerpro/internal/bootstrap"
	"ledgerpro/internal/config"
	"ledgerpro/internal/logger"
	"ledgerpro/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if _, err := logger.Setup(cfg.LoggerConfig()); err != nil {
		log.Fatalf("logger: %v", err)
	}

	backups, listErr := persistence.ListBackups(cfg.BackupDir)
	if len(os.Args) < 2 {
		if listErr != nil {
			log.Fatalf("Failed to list backups: %v", listErr)
		}
		if len(backups) == 0 {
			fmt.Printf("No backups in %s\n", cfg.BackupDir)
			return
		}
		for i, b := range backups {
			fmt.Printf("  [%d] %s\n", i, filepath.Base(b))
		}
		fmt.Println("Run again with a file name or index to restore it.")
		return
	}

	path := os.Args[1]
	if i, err := strconv.Atoi(path); err == nil {
		if listErr != nil {
			log.Fatalf("Failed to list backups: %v", listErr)
		}
		if i < 0 || i >= len(backups) {
			log.Fatalf("No backup with index %d", i)
		}
		path = backups[i]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read backup: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}
	defer rt.Close()

	if err := rt.Service.ImportData(ctx, data); err != nil {
		log.Fatalf("Restore failed: %v", err)
	}
	log.Printf("Restored %s", filepath.Base(path))
}
