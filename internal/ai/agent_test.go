package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ledgerpro/internal/ai"
	"ledgerpro/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeModel struct {
	reply ai.ModelReply
	err   error
	got   ai.ModelRequest
}

func (f *fakeModel) Respond(_ context.Context, req ai.ModelRequest) (ai.ModelReply, error) {
	f.got = req
	return f.reply, f.err
}

// ledgerWriter adapts a core.Ledger to ai.InvoiceWriter.
type ledgerWriter struct{ l *core.Ledger }

func (w ledgerWriter) AddInvoice(_ context.Context, inv core.Invoice) (core.Invoice, error) {
	return w.l.AddInvoice(inv)
}

func seededLedger(t *testing.T) *core.Ledger {
	t.Helper()
	l := core.NewLedger(core.NewBook())
	for _, item := range []core.InventoryItem{
		{Name: "Basmati Rice", PurchasePrice: decimal.NewFromInt(20), SalePrice: decimal.NewFromInt(30), Quantity: 50},
		{Name: "Green Tea", PurchasePrice: decimal.NewFromInt(4), SalePrice: decimal.NewFromInt(7), Quantity: 10},
	} {
		if _, err := l.AddInventoryItem(item); err != nil {
			t.Fatalf("AddInventoryItem: %v", err)
		}
	}
	if _, err := l.AddPerson(core.Customer, core.Person{Name: "Ahmed Traders"}); err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	if _, err := l.AddPerson(core.Supplier, core.Person{Name: "Gulf Foods"}); err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	return l
}

func TestAgent_AddInvoice(t *testing.T) {
	tests := []struct {
		name        string
		args        string
		wantErr     string
		wantTotal   string
		wantType    core.InvoiceType
		wantMethod  core.PaymentMethod
		wantSkipped bool
	}{
		{
			name:       "cash sale priced from inventory",
			args:       `{"type":"SALE","personName":"ahmed","items":[{"itemName":"rice","quantity":2}]}`,
			wantTotal:  "60",
			wantType:   core.InvoiceSale,
			wantMethod: core.PaymentCash,
		},
		{
			name:       "credit purchase uses purchase price",
			args:       `{"type":"purchase","personName":"Gulf","items":[{"itemName":"tea","quantity":10}],"paymentMethod":"credit"}`,
			wantTotal:  "40",
			wantType:   core.InvoicePurchase,
			wantMethod: core.PaymentCredit,
		},
		{
			name:        "unknown items are skipped",
			args:        `{"type":"SALE","personName":"Ahmed","items":[{"itemName":"coffee","quantity":1},{"itemName":"Tea","quantity":1}]}`,
			wantTotal:   "7",
			wantType:    core.InvoiceSale,
			wantMethod:  core.PaymentCash,
			wantSkipped: true,
		},
		{
			name:    "unknown person",
			args:    `{"type":"SALE","personName":"Nobody","items":[{"itemName":"rice","quantity":1}]}`,
			wantErr: `no customer matches "Nobody"`,
		},
		{
			name:    "supplier is not a customer",
			args:    `{"type":"SALE","personName":"Gulf","items":[{"itemName":"rice","quantity":1}]}`,
			wantErr: "no customer matches",
		},
		{
			name:    "no known items",
			args:    `{"type":"SALE","personName":"Ahmed","items":[{"itemName":"coffee","quantity":1}]}`,
			wantErr: "none of the requested items",
		},
		{
			name:    "bad type",
			args:    `{"type":"REFUND","personName":"Ahmed","items":[{"itemName":"rice","quantity":1}]}`,
			wantErr: "SALE or PURCHASE",
		},
		{
			name:    "malformed arguments",
			args:    `{"type":`,
			wantErr: "invalid arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := seededLedger(t)
			model := &fakeModel{reply: ai.ModelReply{
				Text:      "Done.",
				ToolCalls: []ai.ToolCall{{Name: "add_invoice", Arguments: tt.args}},
			}}
			agent := ai.NewAgent(model, zerolog.Nop())

			reply, err := agent.Ask(context.Background(), "record it", l.Book().Snapshot(), ledgerWriter{l})
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if len(reply.Actions) != 1 {
				t.Fatalf("expected 1 action, got %d", len(reply.Actions))
			}
			act := reply.Actions[0]
			invoices := l.Book().Invoices()

			if tt.wantErr != "" {
				if !strings.Contains(act.Error, tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, act.Error)
				}
				if len(invoices) != 0 {
					t.Errorf("expected no invoice, got %d", len(invoices))
				}
				return
			}

			if act.Error != "" {
				t.Fatalf("unexpected action error: %s", act.Error)
			}
			if len(invoices) != 1 {
				t.Fatalf("expected 1 invoice, got %d", len(invoices))
			}
			inv := invoices[0]
			if !inv.Total.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Errorf("expected total %s, got %s", tt.wantTotal, inv.Total)
			}
			if inv.Type != tt.wantType || inv.PaymentMethod != tt.wantMethod {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantType, tt.wantMethod, inv.Type, inv.PaymentMethod)
			}
			if inv.Notes != "Created by assistant" {
				t.Errorf("unexpected notes %q", inv.Notes)
			}
			if got := strings.Contains(act.Summary, "skipped"); got != tt.wantSkipped {
				t.Errorf("summary %q: skipped mention = %v, want %v", act.Summary, got, tt.wantSkipped)
			}
		})
	}
}

func TestAgent_UnknownTool(t *testing.T) {
	l := seededLedger(t)
	model := &fakeModel{reply: ai.ModelReply{ToolCalls: []ai.ToolCall{{Name: "delete_everything", Arguments: "{}"}}}}
	reply, err := ai.NewAgent(model, zerolog.Nop()).Ask(context.Background(), "wipe it", l.Book().Snapshot(), ledgerWriter{l})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(reply.Actions) != 1 || reply.Actions[0].Error != "unknown operation" {
		t.Errorf("expected unknown operation, got %+v", reply.Actions)
	}
	if !strings.Contains(reply.String(), "unknown operation") {
		t.Errorf("reply text does not mention the failure: %q", reply.String())
	}
}

func TestAgent_RequestCarriesContext(t *testing.T) {
	l := seededLedger(t)
	model := &fakeModel{reply: ai.ModelReply{Text: "Hello"}}
	reply, err := ai.NewAgent(model, zerolog.Nop()).Ask(context.Background(), "  hi  ", l.Book().Snapshot(), ledgerWriter{l})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply.String() != "Hello" {
		t.Errorf("unexpected reply %q", reply.String())
	}
	if model.got.Prompt != "hi" {
		t.Errorf("prompt not trimmed: %q", model.got.Prompt)
	}
	if !strings.Contains(model.got.Instructions, "2 inventory items") || !strings.Contains(model.got.Instructions, "SAR") {
		t.Errorf("instructions lack book context: %s", model.got.Instructions)
	}
	tool, ok := model.got.Tools.Get("add_invoice")
	if !ok {
		t.Fatal("add_invoice not offered to the model")
	}
	props, _ := tool.InputSchema["properties"].(map[string]any)
	for _, key := range []string{"type", "personName", "items", "paymentMethod"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
	if len(model.got.Tools.ToOpenAITools()) != 1 {
		t.Error("expected one OpenAI tool")
	}
}

func TestAgent_Errors(t *testing.T) {
	l := seededLedger(t)
	agent := ai.NewAgent(&fakeModel{err: errors.New("rate limited")}, zerolog.Nop())

	if _, err := agent.Ask(context.Background(), "", l.Book().Snapshot(), ledgerWriter{l}); err == nil {
		t.Error("expected an error for an empty prompt")
	}
	if _, err := agent.Ask(context.Background(), "sell rice", l.Book().Snapshot(), ledgerWriter{l}); err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("expected the model error, got %v", err)
	}
}
