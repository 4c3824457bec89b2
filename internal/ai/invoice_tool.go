package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ledgerpro/internal/core"

	"github.com/shopspring/decimal"
)

const (
	addInvoiceTool = "add_invoice"
	assistantNote  = "Created by assistant"
)

// AddInvoiceArgs is the argument object of the add_invoice tool.
type AddInvoiceArgs struct {
	Type          string               `json:"type" jsonschema:"enum=SALE,enum=PURCHASE,description=SALE to a customer or PURCHASE from a supplier"`
	PersonName    string               `json:"personName" jsonschema:"description=Customer or supplier name as the user wrote it"`
	Items         []AddInvoiceItemArgs `json:"items" jsonschema:"minItems=1"`
	PaymentMethod string               `json:"paymentMethod" jsonschema:"enum=CASH,enum=CREDIT,description=CASH unless the user says the amount is owed"`
}

type AddInvoiceItemArgs struct {
	ItemName string `json:"itemName" jsonschema:"description=Inventory item name as the user wrote it"`
	Quantity int    `json:"quantity" jsonschema:"minimum=1"`
}

func (a *Agent) registry(book core.Snapshot, w InvoiceWriter) (*ToolRegistry, error) {
	schema, err := schemaFor(&AddInvoiceArgs{})
	if err != nil {
		return nil, err
	}
	r := NewToolRegistry()
	r.Register(ToolDefinition{
		Name:        addInvoiceTool,
		Description: "Create a sale or purchase invoice for items in inventory, priced from inventory.",
		InputSchema: schema,
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var args AddInvoiceArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			inv, skipped, err := buildInvoice(book, args, a.now().Format("2006-01-02"))
			if err != nil {
				return "", err
			}
			created, err := w.AddInvoice(ctx, inv)
			if err != nil {
				return "", err
			}
			return describeInvoice(created, args.PersonName, skipped), nil
		},
	})
	return r, nil
}

// buildInvoice resolves names against the book. The person and each item are
// the first whose name contains the requested text, ignoring case. Unknown
// items are skipped and returned; the call fails if the person or every item
// is unknown.
func buildInvoice(book core.Snapshot, args AddInvoiceArgs, today string) (core.Invoice, []string, error) {
	typ := core.InvoiceType(strings.ToUpper(strings.TrimSpace(args.Type)))
	people := book.Customers
	switch typ {
	case core.InvoiceSale:
	case core.InvoicePurchase:
		people = book.Suppliers
	default:
		return core.Invoice{}, nil, fmt.Errorf("invoice type must be SALE or PURCHASE, got %q", args.Type)
	}

	person, ok := matchPerson(people, args.PersonName)
	if !ok {
		kind := "customer"
		if typ == core.InvoicePurchase {
			kind = "supplier"
		}
		return core.Invoice{}, nil, fmt.Errorf("no %s matches %q", kind, args.PersonName)
	}

	var lines []core.InvoiceItem
	var skipped []string
	for _, req := range args.Items {
		item, ok := matchItem(book.Inventory, req.ItemName)
		if !ok || req.Quantity <= 0 {
			skipped = append(skipped, req.ItemName)
			continue
		}
		price := item.SalePrice
		if typ == core.InvoicePurchase {
			price = item.PurchasePrice
		}
		lines = append(lines, core.InvoiceItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  req.Quantity,
			UnitPrice: price,
			Total:     price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		})
	}
	if len(lines) == 0 {
		return core.Invoice{}, skipped, errors.New("none of the requested items are in inventory")
	}

	method := core.PaymentCash
	if strings.EqualFold(strings.TrimSpace(args.PaymentMethod), string(core.PaymentCredit)) {
		method = core.PaymentCredit
	}

	return core.Invoice{
		Date:          today,
		Type:          typ,
		PersonID:      person.ID,
		Items:         lines,
		Discount:      decimal.Zero,
		PaymentMethod: method,
		Currency:      book.Settings.Currency,
		Notes:         assistantNote,
	}, skipped, nil
}

func matchPerson(people []core.Person, name string) (core.Person, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return core.Person{}, false
	}
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return p, true
		}
	}
	return core.Person{}, false
}

func matchItem(items []core.InventoryItem, name string) (core.InventoryItem, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return core.InventoryItem{}, false
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return it, true
		}
	}
	return core.InventoryItem{}, false
}

func describeInvoice(inv core.Invoice, personName string, skipped []string) string {
	s := fmt.Sprintf("%s %s for %s: %d line(s), total %s %s, %s",
		strings.ToLower(string(inv.Type)), inv.Number, personName, len(inv.Items),
		inv.Total.StringFixed(2), inv.Currency, strings.ToLower(string(inv.PaymentMethod)))
	if len(skipped) > 0 {
		s += fmt.Sprintf(" (skipped unknown items: %s)", strings.Join(skipped, ", "))
	}
	return s
}
