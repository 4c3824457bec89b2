package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"ledgerpro/internal/ai"
	"ledgerpro/internal/app"
	"ledgerpro/internal/core"
	"ledgerpro/internal/excel"
	"ledgerpro/internal/persistence"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type scriptedModel struct{ reply ai.ModelReply }

func (m scriptedModel) Respond(context.Context, ai.ModelRequest) (ai.ModelReply, error) {
	return m.reply, nil
}

type harness struct {
	svc    app.ApplicationService
	bridge *persistence.Bridge
}

func newHarness(t *testing.T, model ai.ModelClient) *harness {
	t.Helper()
	store := persistence.NewFileStore(filepath.Join(t.TempDir(), "ledgerpro.json"))
	bridge := persistence.NewBridge(store, zerolog.Nop())
	book, err := bridge.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var agent *ai.Agent
	if model != nil {
		agent = ai.NewAgent(model, zerolog.Nop())
	}
	return &harness{
		svc:    app.NewAppService(core.NewLedger(book), bridge, agent, zerolog.Nop()),
		bridge: bridge,
	}
}

func (h *harness) seed(t *testing.T) (core.InventoryItem, core.Person, core.Person) {
	t.Helper()
	ctx := context.Background()
	item, err := h.svc.AddInventoryItem(ctx, core.InventoryItem{SKU: "OIL-1", Name: "Olive Oil", SalePrice: decimal.NewFromInt(40), PurchasePrice: decimal.NewFromInt(25), Quantity: 20})
	if err != nil {
		t.Fatalf("AddInventoryItem: %v", err)
	}
	c, err := h.svc.AddPerson(ctx, core.Customer, core.Person{Name: "Layla Market"})
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	s, err := h.svc.AddPerson(ctx, core.Supplier, core.Person{Name: "Levant Imports"})
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	return *item, *c, *s
}

func TestAppService_PersistsAfterEachMutation(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	item, customer, _ := h.seed(t)

	inv, err := h.svc.AddInvoice(ctx, core.Invoice{
		Type: core.InvoiceSale, PersonID: customer.ID, PaymentMethod: core.PaymentCredit,
		Items: []core.InvoiceItem{{ItemID: item.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(40)}},
	})
	if err != nil {
		t.Fatalf("AddInvoice failed: %v", err)
	}

	reloaded, err := h.bridge.Load(ctx)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, ok := reloaded.FindInvoice(inv.ID)
	if !ok || got.Number != "INV-1001" {
		t.Fatalf("invoice not persisted: %+v", got)
	}
	stock, _ := reloaded.FindItem(item.ID)
	if stock.Quantity != 17 {
		t.Errorf("expected persisted quantity 17, got %d", stock.Quantity)
	}
	p, _ := reloaded.FindPerson(core.Customer, customer.ID)
	if !p.Balance.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected persisted balance 120, got %s", p.Balance)
	}
}

func TestAppService_NotFoundIsReported(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.svc.DeleteInvoice(context.Background(), "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppService_SettleAccounts(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	item, customer, supplier := h.seed(t)

	res, err := h.svc.SettleAccounts(ctx, app.LinkRequest{CustomerID: customer.ID, SupplierID: supplier.ID})
	if err != nil {
		t.Fatalf("SettleAccounts failed: %v", err)
	}
	if res.Settled {
		t.Error("expected nothing to settle with zero balances")
	}

	for _, inv := range []core.Invoice{
		{Type: core.InvoiceSale, PersonID: customer.ID, PaymentMethod: core.PaymentCredit,
			Items: []core.InvoiceItem{{ItemID: item.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(40)}}},
		{Type: core.InvoicePurchase, PersonID: supplier.ID, PaymentMethod: core.PaymentCredit,
			Items: []core.InvoiceItem{{ItemID: item.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(25)}}},
	} {
		if _, err := h.svc.AddInvoice(ctx, inv); err != nil {
			t.Fatalf("AddInvoice: %v", err)
		}
	}
	res, err = h.svc.SettleAccounts(ctx, app.LinkRequest{CustomerID: customer.ID, SupplierID: supplier.ID})
	if err != nil {
		t.Fatalf("SettleAccounts failed: %v", err)
	}
	if !res.Settled || !res.Settlement.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected a settlement of 50, got %+v", res)
	}
	vouchers, _ := h.svc.ListVouchers(ctx)
	if len(vouchers.Vouchers) != 2 {
		t.Errorf("expected 2 vouchers, got %d", len(vouchers.Vouchers))
	}
}

func TestAppService_SettingsKeepPasswordFields(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if err := h.svc.SetPassword(ctx, app.SetPasswordRequest{Enabled: true, Password: "abc"}); !errors.Is(err, app.ErrInvalidPassword) {
		t.Fatalf("expected a short password to be rejected, got %v", err)
	}
	if err := h.svc.SetPassword(ctx, app.SetPasswordRequest{Enabled: true, Password: "open-sesame"}); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	updated, err := h.svc.UpdateSettings(ctx, core.Settings{ShopName: "Corner Store", Currency: "USD"})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if !updated.IsPasswordEnabled || updated.PasswordHash != "" {
		t.Errorf("password flag lost or hash leaked: %+v", updated)
	}

	if ok, err := h.svc.VerifyPassword(ctx, "open-sesame"); !ok || err != nil {
		t.Errorf("expected the password to verify, got %v, %v", ok, err)
	}
	if ok, err := h.svc.VerifyPassword(ctx, "wrong"); ok || !errors.Is(err, app.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v, %v", ok, err)
	}

	if err := h.svc.SetPassword(ctx, app.SetPasswordRequest{Enabled: false, CurrentPassword: "wrong"}); !errors.Is(err, app.ErrInvalidPassword) {
		t.Errorf("disabling with a wrong password should fail, got %v", err)
	}
	if err := h.svc.SetPassword(ctx, app.SetPasswordRequest{Enabled: false, CurrentPassword: "open-sesame"}); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if ok, _ := h.svc.VerifyPassword(ctx, ""); !ok {
		t.Error("expected an open gate after disabling")
	}

	state, _ := h.svc.GetState(ctx)
	if state.Snapshot.Settings.ShopName != "Corner Store" || state.Snapshot.Settings.Currency != "USD" {
		t.Errorf("settings not applied: %+v", state.Snapshot.Settings)
	}
}

func TestAppService_ExportImportClearRestore(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.seed(t)

	exported, err := h.svc.ExportData(ctx)
	if err != nil {
		t.Fatalf("ExportData failed: %v", err)
	}

	if err := h.svc.ClearData(ctx); err != nil {
		t.Fatalf("ClearData failed: %v", err)
	}
	inv, _ := h.svc.ListInventory(ctx)
	if len(inv.Items) != 0 {
		t.Fatalf("expected empty inventory after clear, got %d", len(inv.Items))
	}

	if err := h.svc.ImportData(ctx, []byte(`{"customers": []}`)); !errors.Is(err, persistence.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	inv, _ = h.svc.ListInventory(ctx)
	if len(inv.Items) != 0 {
		t.Fatal("rejected import changed the book")
	}

	if err := h.svc.RestoreAutoBackup(ctx); err != nil {
		t.Fatalf("RestoreAutoBackup failed: %v", err)
	}
	inv, _ = h.svc.ListInventory(ctx)
	if len(inv.Items) != 1 {
		t.Errorf("expected the auto backup to bring back 1 item, got %d", len(inv.Items))
	}

	if err := h.svc.ClearData(ctx); err != nil {
		t.Fatalf("ClearData failed: %v", err)
	}
	if err := h.svc.ImportData(ctx, exported); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}
	people, _ := h.svc.ListPeople(ctx, core.Supplier)
	if len(people.People) != 1 || people.People[0].Name != "Levant Imports" {
		t.Errorf("unexpected suppliers after import: %+v", people.People)
	}
}

func TestAppService_InventorySpreadsheet(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	item, _, _ := h.seed(t)

	var buf bytes.Buffer
	if err := h.svc.ExportInventory(ctx, &buf); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	// Re-importing the same sheet updates by SKU instead of duplicating.
	res, err := h.svc.ImportInventory(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if res.Added != 0 || res.Updated != 1 {
		t.Errorf("expected 0 added / 1 updated, got %+v", res)
	}
	list, _ := h.svc.ListInventory(ctx)
	if len(list.Items) != 1 || list.Items[0].ID != item.ID {
		t.Errorf("unexpected inventory after re-import: %+v", list.Items)
	}

	if _, err := h.svc.ImportInventory(ctx, strings.NewReader("garbage")); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a bad sheet, got %v", err)
	}
}

func TestAppService_InventoryImportIsAllOrNothing(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	item, _, _ := h.seed(t)

	var buf bytes.Buffer
	rows := []core.InventoryItem{
		{SKU: "DAT-1", Name: "Dates", SalePrice: decimal.NewFromInt(12), Quantity: 5},
		{SKU: "OIL-1", Name: "Olive Oil", SalePrice: decimal.NewFromInt(45), PurchasePrice: decimal.NewFromInt(25), Quantity: 99},
		{SKU: "BAD-1", Name: "Broken Row", SalePrice: decimal.NewFromInt(5), Quantity: 1, MinStockLevel: -3},
	}
	if err := excel.WriteInventory(&buf, rows); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}

	res, err := h.svc.ImportInventory(ctx, bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for the negative reorder level, got %v", err)
	}
	if res != nil {
		t.Errorf("expected no result for a rejected sheet, got %+v", res)
	}

	list, _ := h.svc.ListInventory(ctx)
	if len(list.Items) != 1 {
		t.Fatalf("expected inventory untouched (1 item), got %d", len(list.Items))
	}
	if got := list.Items[0]; got.ID != item.ID || got.Quantity != 20 || !got.SalePrice.Equal(decimal.NewFromInt(40)) {
		t.Errorf("existing item changed by a rejected import: %+v", got)
	}

	stored, err := h.bridge.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n := len(stored.Inventory()); n != 1 {
		t.Errorf("expected 1 stored item after the rejected import, got %d", n)
	}
}

func TestAppService_Ask(t *testing.T) {
	model := scriptedModel{reply: ai.ModelReply{
		Text: "Recorded.",
		ToolCalls: []ai.ToolCall{{
			Name:      "add_invoice",
			Arguments: `{"type":"SALE","personName":"layla","items":[{"itemName":"olive","quantity":2}],"paymentMethod":"CREDIT"}`,
		}},
	}}
	h := newHarness(t, model)
	ctx := context.Background()
	_, customer, _ := h.seed(t)

	reply, err := h.svc.Ask(ctx, "sell 2 olive oil to layla on credit")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(reply.Actions) != 1 || reply.Actions[0].Error != "" {
		t.Fatalf("unexpected actions: %+v", reply.Actions)
	}
	people, _ := h.svc.ListPeople(ctx, core.Customer)
	for _, p := range people.People {
		if p.ID == customer.ID && !p.Balance.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected balance 80, got %s", p.Balance)
		}
	}

	noAgent := newHarness(t, nil)
	if _, err := noAgent.svc.Ask(ctx, "hi"); !errors.Is(err, app.ErrAssistantUnavailable) {
		t.Errorf("expected ErrAssistantUnavailable, got %v", err)
	}
}

func TestAppService_ConcurrentWrites(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	item, customer, _ := h.seed(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.AddInvoice(ctx, core.Invoice{
				Type: core.InvoiceSale, PersonID: customer.ID, PaymentMethod: core.PaymentCash,
				Items: []core.InvoiceItem{{ItemID: item.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(40)}},
			})
			if err != nil {
				t.Errorf("AddInvoice: %v", err)
			}
		}()
	}
	wg.Wait()

	list, _ := h.svc.ListInvoices(ctx)
	seen := map[string]bool{}
	for _, inv := range list.Invoices {
		if seen[inv.Number] {
			t.Errorf("duplicate number %s", inv.Number)
		}
		seen[inv.Number] = true
	}
	stock, _ := h.svc.ListInventory(ctx)
	if stock.Items[0].Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", stock.Items[0].Quantity)
	}
}

func TestAppService_RecordBackup(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	if err := h.svc.RecordBackup(ctx, at); err != nil {
		t.Fatalf("RecordBackup failed: %v", err)
	}
	snap, _ := h.svc.BackupSnapshot(ctx)
	if snap.Settings.LastBackupTimestamp != at.UnixMilli() {
		t.Errorf("expected %d, got %d", at.UnixMilli(), snap.Settings.LastBackupTimestamp)
	}
}
