package repl

import (
	"fmt"
	"io"
	"strings"

	"ledgerpro/internal/ai"
	"ledgerpro/internal/app"
	"ledgerpro/internal/core"
)

// PrintStock writes the inventory table, flagging low-stock rows.
func PrintStock(w io.Writer, result *app.InventoryListResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "  INVENTORY (%d items, %d low)\n", len(result.Items), result.LowStock)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	if len(result.Items) == 0 {
		fmt.Fprintln(w, "  No items found.")
		fmt.Fprintln(w, strings.Repeat("=", 80))
		return
	}
	fmt.Fprintf(w, "  %-10s %-28s %8s %6s %12s %12s\n", "SKU", "NAME", "QTY", "MIN", "SALE", "PURCHASE")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, it := range result.Items {
		flag := ""
		if it.IsLowStock() {
			flag = " !"
		}
		fmt.Fprintf(w, "  %-10s %-28s %8d %6d %12s %12s%s\n",
			it.SKU, truncate(it.Name, 28), it.Quantity, it.MinStockLevel,
			it.SalePrice.StringFixed(2), it.PurchasePrice.StringFixed(2), flag)
	}
	fmt.Fprintln(w, strings.Repeat("=", 80))
}

// PrintPeople writes a customer or supplier list with balances.
func PrintPeople(w io.Writer, result *app.PeopleListResult) {
	title := "CUSTOMERS"
	if result.Kind == core.Supplier {
		title = "SUPPLIERS"
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	if len(result.People) == 0 {
		fmt.Fprintln(w, "  None found.")
		fmt.Fprintln(w, strings.Repeat("=", 72))
		return
	}
	fmt.Fprintf(w, "  %-28s %-16s %14s  %s\n", "NAME", "PHONE", "BALANCE", "LINKED")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, p := range result.People {
		linked := ""
		if p.LinkedPersonID != "" {
			linked = "yes"
		}
		fmt.Fprintf(w, "  %-28s %-16s %14s  %s\n", truncate(p.Name, 28), p.Phone, p.Balance.StringFixed(2), linked)
	}
	fmt.Fprintln(w, strings.Repeat("=", 72))
}

func PrintInvoices(w io.Writer, result *app.InvoiceListResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintln(w, "  INVOICES")
	fmt.Fprintln(w, strings.Repeat("=", 72))
	if len(result.Invoices) == 0 {
		fmt.Fprintln(w, "  No invoices found.")
		fmt.Fprintln(w, strings.Repeat("=", 72))
		return
	}
	fmt.Fprintf(w, "  %-10s %-12s %-9s %-7s %6s %14s\n", "NUMBER", "DATE", "TYPE", "METHOD", "LINES", "TOTAL")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, inv := range result.Invoices {
		fmt.Fprintf(w, "  %-10s %-12s %-9s %-7s %6d %14s\n",
			inv.Number, inv.Date, inv.Type, inv.PaymentMethod, len(inv.Items), inv.Total.StringFixed(2))
	}
	fmt.Fprintln(w, strings.Repeat("=", 72))
}

func PrintVouchers(w io.Writer, result *app.VoucherListResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintln(w, "  VOUCHERS")
	fmt.Fprintln(w, strings.Repeat("=", 72))
	if len(result.Vouchers) == 0 {
		fmt.Fprintln(w, "  No vouchers found.")
		fmt.Fprintln(w, strings.Repeat("=", 72))
		return
	}
	fmt.Fprintf(w, "  %-10s %-12s %-8s %-11s %14s\n", "NUMBER", "DATE", "TYPE", "METHOD", "AMOUNT")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, v := range result.Vouchers {
		fmt.Fprintf(w, "  %-10s %-12s %-8s %-11s %14s\n",
			v.Number, v.Date, v.Type, v.PaymentMethod, v.Amount.StringFixed(2))
	}
	fmt.Fprintln(w, strings.Repeat("=", 72))
}

// PrintSummary writes the dashboard totals.
func PrintSummary(w io.Writer, s *core.Summary) {
	row := func(label, value string) {
		fmt.Fprintf(w, "  %-24s %20s\n", label, value)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "  SUMMARY (%s)\n", s.Currency)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	row("Total sales", s.TotalSales.StringFixed(2))
	row("Total purchases", s.TotalPurchases.StringFixed(2))
	row("Operating profit", s.OperatingProfit.StringFixed(2))
	row("Receivables", s.Receivables.StringFixed(2))
	row("Payables", s.Payables.StringFixed(2))
	row("Stock value", s.StockValue.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	row("Items", fmt.Sprintf("%d (%d low)", s.ItemCount, len(s.LowStock)))
	row("Customers / suppliers", fmt.Sprintf("%d / %d", s.CustomerCount, s.SupplierCount))
	row("Invoices / vouchers", fmt.Sprintf("%d / %d", s.InvoiceCount, s.VoucherCount))
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// PrintReply writes the assistant's text followed by one line per action.
func PrintReply(w io.Writer, r *ai.Reply) {
	if r.Text != "" {
		fmt.Fprintf(w, "\n[AI]: %s\n", r.Text)
	}
	for _, a := range r.Actions {
		if a.Error != "" {
			fmt.Fprintf(w, "  x %s: %s\n", a.Tool, a.Error)
			continue
		}
		fmt.Fprintf(w, "  + %s\n", a.Summary)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LEDGERPRO COMMANDS")
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  /stock                       Inventory with low-stock flags")
	fmt.Fprintln(w, "  /people [customers|suppliers] Customer or supplier balances")
	fmt.Fprintln(w, "  /invoices                    List invoices")
	fmt.Fprintln(w, "  /vouchers                    List receipt and payment vouchers")
	fmt.Fprintln(w, "  /summary [currency]          Sales, profit, balances, stock value")
	fmt.Fprintln(w, "  /settle                      Net a customer against a supplier (interactive)")
	fmt.Fprintln(w, "  /help                        Show this help")
	fmt.Fprintln(w, "  /exit                        Exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ASSISTANT  (no / prefix)")
	fmt.Fprintln(w, "  Describe a sale or purchase in plain language.")
	fmt.Fprintln(w, "  Example: \"sold 3 rice bags to Noor Bakery on credit\"")
	fmt.Fprintln(w, strings.Repeat("=", 62))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
