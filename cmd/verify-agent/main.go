// verify-agent sends one request to the configured model against a small
// in-memory ledger and prints what the assistant did. Nothing is persisted.
//
// Usage: go run ./cmd/verify-agent ["request"]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"ledgerpro/internal/adapters/repl"
	"ledgerpro/internal/ai"
	"ledgerpro/internal/config"
	"ledgerpro/internal/core"
	"ledgerpro/internal/logger"

	"github.com/shopspring/decimal"
)

type ledgerWriter struct{ ledger *core.Ledger }

func (w ledgerWriter) AddInvoice(_ context.Context, inv core.Invoice) (core.Invoice, error) {
	return w.ledger.AddInvoice(inv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}
	if _, err := logger.Setup(cfg.LoggerConfig()); err != nil {
		log.Fatalf("logger: %v", err)
	}

	ledger := core.NewLedger(core.NewBook())
	must := func(err error) {
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
	_, err = ledger.AddInventoryItem(core.InventoryItem{SKU: "RICE-5", Name: "Basmati Rice 5kg", SalePrice: decimal.NewFromInt(45), PurchasePrice: decimal.NewFromInt(30), Quantity: 40, MinStockLevel: 5})
	must(err)
	_, err = ledger.AddInventoryItem(core.InventoryItem{SKU: "OIL-1", Name: "Sunflower Oil 1L", SalePrice: decimal.NewFromInt(12), PurchasePrice: decimal.NewFromInt(8), Quantity: 60, MinStockLevel: 10})
	must(err)
	_, err = ledger.AddPerson(core.Customer, core.Person{Name: "Noor Bakery", Phone: "0500000001"})
	must(err)
	_, err = ledger.AddPerson(core.Supplier, core.Person{Name: "Gulf Wholesale", Phone: "0500000002"})
	must(err)

	prompt := "Sold 3 bags of basmati rice and 2 sunflower oil to Noor Bakery on credit."
	if len(os.Args) > 1 {
		prompt = strings.Join(os.Args[1:], " ")
	}

	agent := ai.NewAgent(ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), logger.WithComponent("assistant"))
	ctx := context.Background()

	fmt.Printf("REQUEST: %s\n", prompt)
	reply, err := agent.Ask(ctx, prompt, ledger.Book().Snapshot(), ledgerWriter{ledger})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	repl.PrintReply(os.Stdout, reply)
	sum := core.Summarize(ledger.Book(), "")
	repl.PrintSummary(os.Stdout, &sum)
}
