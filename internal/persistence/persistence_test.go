package persistence_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ledgerpro/internal/core"
	"ledgerpro/internal/logger"
	"ledgerpro/internal/persistence"

	"github.com/shopspring/decimal"
)

func sampleBook(t *testing.T) *core.Book {
	t.Helper()
	l := core.NewLedger(core.NewBook())
	item, err := l.AddInventoryItem(core.InventoryItem{SKU: "A1", Name: "Rice 5kg", SalePrice: decimal.NewFromInt(30), Quantity: 4})
	if err != nil {
		t.Fatalf("AddInventoryItem: %v", err)
	}
	c, err := l.AddPerson(core.Customer, core.Person{Name: "Noor"})
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	_, err = l.AddInvoice(core.Invoice{
		Type: core.InvoiceSale, PersonID: c.ID, PaymentMethod: core.PaymentCredit,
		Items: []core.InvoiceItem{{ItemID: item.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(30)}},
	})
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	return l.Book()
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledgerpro.json")
	store := persistence.NewFileStore(path)

	if _, err := store.Load(ctx, persistence.SlotCurrent); !errors.Is(err, persistence.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on a fresh store, got %v", err)
	}

	book := sampleBook(t)
	if err := store.Save(ctx, persistence.SlotCurrent, book.Snapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	snap, err := store.Load(ctx, persistence.SlotCurrent)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Invoices) != 1 || snap.Invoices[0].Number != "INV-1001" {
		t.Errorf("unexpected invoices after reload: %+v", snap.Invoices)
	}
	if !snap.Customers[0].Balance.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected balance 30, got %s", snap.Customers[0].Balance)
	}
	if snap.Sequences == nil || snap.Sequences.Invoice != 1 {
		t.Errorf("sequences not persisted: %+v", snap.Sequences)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "ledgerpro.auto.json")); !os.IsNotExist(err) {
		t.Errorf("auto slot written by a plain store save: %v", err)
	}
}

func TestBridge_AutoSlot(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewFileStore(filepath.Join(t.TempDir(), "ledgerpro.json"))
	bridge := persistence.NewBridge(store, logger.Nop())

	if err := bridge.Save(ctx, core.NewBook()); err != nil {
		t.Fatalf("Save(empty) failed: %v", err)
	}
	if _, err := bridge.LoadAuto(ctx); !errors.Is(err, persistence.ErrNoSnapshot) {
		t.Fatalf("expected no auto snapshot for an empty book, got %v", err)
	}

	if err := bridge.Save(ctx, sampleBook(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Clearing writes an empty current slot and must leave the auto slot.
	if err := bridge.Save(ctx, core.NewBook()); err != nil {
		t.Fatalf("Save(cleared) failed: %v", err)
	}

	current, err := bridge.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !current.IsEmpty() {
		t.Error("expected the current slot to be empty")
	}
	auto, err := bridge.LoadAuto(ctx)
	if err != nil {
		t.Fatalf("LoadAuto failed: %v", err)
	}
	if len(auto.Invoices()) != 1 {
		t.Errorf("expected the auto slot to keep 1 invoice, got %d", len(auto.Invoices()))
	}
}

func TestBridge_LoadFreshBook(t *testing.T) {
	bridge := persistence.NewBridge(persistence.NewFileStore(filepath.Join(t.TempDir(), "x.json")), logger.Nop())
	book, err := bridge.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !book.IsEmpty() || book.Settings().Currency != "SAR" {
		t.Errorf("expected an empty default book, got %+v", book.Settings())
	}
}

func TestDecode(t *testing.T) {
	valid, err := persistence.Encode(sampleBook(t).Snapshot())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"exported document", string(valid), false},
		{"minimal", `{"inventory": [], "settings": {}}`, false},
		{"not json", `inventory: []`, true},
		{"array", `[]`, true},
		{"missing settings", `{"inventory": []}`, true},
		{"missing inventory", `{"settings": {}}`, true},
		{"null inventory", `{"inventory": null, "settings": {}}`, true},
		{"wrong type", `{"inventory": {}, "settings": {}}`, true},
		{"duplicate ids", `{"inventory": [{"id":"a","name":"x"},{"id":"a","name":"y"}], "settings": {}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := persistence.Decode([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, persistence.ErrInvalidSnapshot) {
					t.Errorf("expected ErrInvalidSnapshot, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
