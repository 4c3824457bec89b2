// verify-db loads the stored ledger (current and auto slots) from the
// configured store and reports counts, numbering counters and any
// referential problems. It never writes.
//
// Usage: go run ./cmd/verify-db
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"ledgerpro/internal/bootstrap"
	"ledgerpro/internal/config"
	"ledgerpro/internal/core"
	"ledgerpro/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, pool, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if pool != nil {
		defer pool.Close()
	}

	problems := 0
	for _, slot := range []persistence.Slot{persistence.SlotCurrent, persistence.SlotAuto} {
		problems += verifySlot(ctx, store, slot)
	}

	if problems > 0 {
		fmt.Printf("[FAIL] %d problem(s) found.\n", problems)
		os.Exit(1)
	}
	fmt.Println("[DONE] Stored ledger is consistent.")
}

func verifySlot(ctx context.Context, store persistence.SnapshotStore, slot persistence.Slot) int {
	snap, err := store.Load(ctx, slot)
	if errors.Is(err, persistence.ErrNoSnapshot) {
		fmt.Printf("[SKIP] %s: nothing stored\n", slot)
		return 0
	}
	if err != nil {
		fmt.Printf("[FAIL] %s: %v\n", slot, err)
		return 1
	}

	book, err := core.BookFromSnapshot(snap)
	if err != nil {
		fmt.Printf("[FAIL] %s: %v\n", slot, err)
		return 1
	}

	seq := book.Sequences()
	fmt.Printf("[OK]   %s: %d items, %d customers, %d suppliers, %d invoices, %d vouchers (next INV %d, next voucher %d)\n",
		slot, len(book.Inventory()), len(book.Customers()), len(book.Suppliers()),
		len(book.Invoices()), len(book.Vouchers()), 1001+seq.Invoice, 5001+seq.Voucher)

	findings := core.Audit(book)
	for _, f := range findings {
		fmt.Printf("[WARN] %s: %s\n", slot, f)
	}
	return len(findings)
}
