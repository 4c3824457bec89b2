package core

import (
	"github.com/shopspring/decimal"
)

// Summary holds the dashboard figures derived from a book.
//
// Sales, purchases and operating profit only count invoices in Currency.
// OperatingProfit is sale totals less the current purchase price of each
// sold line; a line whose item was deleted costs nothing.
// Receivables and Payables only count positive balances: a customer with a
// negative balance has prepaid and does not owe anything.
type Summary struct {
	Currency        string          `json:"currency"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalPurchases  decimal.Decimal `json:"totalPurchases"`
	OperatingProfit decimal.Decimal `json:"operatingProfit"`
	Receivables     decimal.Decimal `json:"receivables"`
	Payables        decimal.Decimal `json:"payables"`
	StockValue      decimal.Decimal `json:"stockValue"`
	LowStock        []InventoryItem `json:"lowStock"`
	ItemCount       int             `json:"itemCount"`
	CustomerCount   int             `json:"customerCount"`
	SupplierCount   int             `json:"supplierCount"`
	InvoiceCount    int             `json:"invoiceCount"`
	VoucherCount    int             `json:"voucherCount"`
}

// Summarize computes the dashboard figures for currency. An empty currency
// means the book's default; so does an invoice with no currency of its own.
func Summarize(b *Book, currency string) Summary {
	if currency == "" {
		currency = b.settings.Currency
	}
	s := Summary{
		Currency:        currency,
		TotalSales:      decimal.Zero,
		TotalPurchases:  decimal.Zero,
		OperatingProfit: decimal.Zero,
		Receivables:     decimal.Zero,
		Payables:        decimal.Zero,
		StockValue:      decimal.Zero,
		LowStock:        []InventoryItem{},
		ItemCount:       b.inventory.len(),
		CustomerCount:   b.customers.len(),
		SupplierCount:   b.suppliers.len(),
		InvoiceCount:    b.invoices.len(),
		VoucherCount:    b.vouchers.len(),
	}

	for _, inv := range b.invoices.items {
		if invoiceCurrency(b, inv) != currency {
			continue
		}
		switch inv.Type {
		case InvoiceSale:
			s.TotalSales = s.TotalSales.Add(inv.Total)
			s.OperatingProfit = s.OperatingProfit.Add(inv.Total.Sub(b.costOfSale(inv)))
		case InvoicePurchase:
			s.TotalPurchases = s.TotalPurchases.Add(inv.Total)
		}
	}
	for _, p := range b.customers.items {
		if p.Balance.IsPositive() {
			s.Receivables = s.Receivables.Add(p.Balance)
		}
	}
	for _, p := range b.suppliers.items {
		if p.Balance.IsPositive() {
			s.Payables = s.Payables.Add(p.Balance)
		}
	}
	for _, item := range b.inventory.items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		s.StockValue = s.StockValue.Add(item.PurchasePrice.Mul(qty))
		if item.IsLowStock() {
			s.LowStock = append(s.LowStock, item)
		}
	}
	return s
}

func invoiceCurrency(b *Book, inv Invoice) string {
	if inv.Currency == "" {
		return b.settings.Currency
	}
	return inv.Currency
}

// costOfSale prices each line of inv at the item's current purchase price.
func (b *Book) costOfSale(inv Invoice) decimal.Decimal {
	cost := decimal.Zero
	for _, line := range inv.Items {
		item, ok := b.inventory.find(line.ItemID)
		if !ok {
			continue
		}
		cost = cost.Add(item.PurchasePrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return cost
}

// BalanceTotal is the sum of every customer and supplier balance.
func (b *Book) BalanceTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.customers.items {
		total = total.Add(p.Balance)
	}
	for _, p := range b.suppliers.items {
		total = total.Add(p.Balance)
	}
	return total
}
