package core_test

import (
	"errors"
	"testing"

	"ledgerpro/internal/core"
)

func TestBookFromSnapshot_SeedsLegacyCounters(t *testing.T) {
	tests := []struct {
		name     string
		snap     core.Snapshot
		wantInv  string
		wantVchr string
	}{
		{
			name:     "empty",
			snap:     core.Snapshot{},
			wantInv:  "INV-1001",
			wantVchr: "REC-5001",
		},
		{
			name: "numbers beyond length after deletes",
			snap: core.Snapshot{
				Invoices: []core.Invoice{{ID: "a", Number: "INV-1004"}},
				Vouchers: []core.Voucher{{ID: "v", Number: "PAY-5007"}},
			},
			wantInv:  "INV-1005",
			wantVchr: "REC-5008",
		},
		{
			name: "unparseable numbers fall back to length",
			snap: core.Snapshot{
				Invoices: []core.Invoice{{ID: "a", Number: "legacy"}, {ID: "b", Number: ""}},
			},
			wantInv:  "INV-1003",
			wantVchr: "REC-5001",
		},
		{
			name: "stored counters win when higher",
			snap: core.Snapshot{
				Invoices:  []core.Invoice{{ID: "a", Number: "INV-1001"}},
				Sequences: &core.Sequences{Invoice: 9, Voucher: 4},
			},
			wantInv:  "INV-1010",
			wantVchr: "REC-5005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := core.BookFromSnapshot(tt.snap)
			if err != nil {
				t.Fatalf("BookFromSnapshot failed: %v", err)
			}
			b2, _ := core.BookFromSnapshot(core.Snapshot{
				Customers: []core.Person{{ID: "c", Name: "Walk-in"}},
				Inventory: []core.InventoryItem{{ID: "i", Name: "Item"}},
				Sequences: ptr(b.Sequences()),
			})
			l := core.NewLedger(b2)

			inv, err := l.AddInvoice(core.Invoice{
				Type: core.InvoiceSale, PersonID: "c", PaymentMethod: core.PaymentCash,
				Items: []core.InvoiceItem{{ItemID: "i", Quantity: 1, UnitPrice: dec("1")}},
			})
			if err != nil {
				t.Fatalf("AddInvoice failed: %v", err)
			}
			if inv.Number != tt.wantInv {
				t.Errorf("expected %s, got %s", tt.wantInv, inv.Number)
			}
			v, err := l.AddVoucher(core.Voucher{Type: core.VoucherReceipt, PersonID: "c", Amount: dec("1")})
			if err != nil {
				t.Fatalf("AddVoucher failed: %v", err)
			}
			if v.Number != tt.wantVchr {
				t.Errorf("expected %s, got %s", tt.wantVchr, v.Number)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestBookFromSnapshot_RejectsDuplicateIDs(t *testing.T) {
	_, err := core.BookFromSnapshot(core.Snapshot{
		Customers: []core.Person{{ID: "c1", Name: "A"}, {ID: "c1", Name: "B"}},
	})
	if !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestBookFromSnapshot_FillsSettingsDefaults(t *testing.T) {
	b, err := core.BookFromSnapshot(core.Snapshot{Settings: core.Settings{ShopName: "Corner Shop"}})
	if err != nil {
		t.Fatalf("BookFromSnapshot failed: %v", err)
	}
	s := b.Settings()
	if s.ShopName != "Corner Shop" {
		t.Errorf("shop name overwritten: %s", s.ShopName)
	}
	if s.Currency != "SAR" || s.AutoBackupInterval != core.BackupDaily {
		t.Errorf("defaults not applied: %+v", s)
	}
}

func TestBook_CloneIsIndependent(t *testing.T) {
	b, err := core.BookFromSnapshot(core.Snapshot{
		Inventory: []core.InventoryItem{{ID: "i", Name: "Item", Quantity: 3}},
		Invoices: []core.Invoice{{ID: "a", Number: "INV-1001",
			Items: []core.InvoiceItem{{ID: "l", ItemID: "i", Quantity: 1}}}},
	})
	if err != nil {
		t.Fatalf("BookFromSnapshot failed: %v", err)
	}
	c := b.Clone()
	c.ApplyInvoiceStock(core.Invoice{Type: core.InvoicePurchase, Items: []core.InvoiceItem{{ItemID: "i", Quantity: 4}}})

	orig, _ := b.FindItem("i")
	if orig.Quantity != 3 {
		t.Errorf("clone mutation leaked into original: %d", orig.Quantity)
	}
	inv, _ := b.FindInvoice("a")
	inv.Items[0].Quantity = 99
	again, _ := b.FindInvoice("a")
	if again.Items[0].Quantity != 1 {
		t.Error("FindInvoice returned shared line storage")
	}
}
