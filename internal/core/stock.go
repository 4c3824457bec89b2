package core

// stockDelta is one signed change to one inventory item's quantity.
type stockDelta struct {
	itemID string
	qty    int
}

// invoiceStockEffect: a sale takes stock out, a purchase brings it in.
func invoiceStockEffect(inv Invoice) []stockDelta {
	sign := 1
	if inv.Type == InvoiceSale {
		sign = -1
	}
	out := make([]stockDelta, 0, len(inv.Items))
	for _, line := range inv.Items {
		out = append(out, stockDelta{itemID: line.ItemID, qty: sign * line.Quantity})
	}
	return out
}

func invertStock(ds []stockDelta) []stockDelta {
	out := make([]stockDelta, len(ds))
	for i, d := range ds {
		d.qty = -d.qty
		out[i] = d
	}
	return out
}

// adjustStock applies one delta without clamping. Lines whose item has been
// deleted are skipped.
func (b *Book) adjustStock(d stockDelta) {
	item, ok := b.inventory.find(d.itemID)
	if !ok {
		return
	}
	item.Quantity += d.qty
	_ = b.inventory.replace(item.ID, item)
}

// ApplyInvoiceStock moves stock for every line of inv.
func (b *Book) ApplyInvoiceStock(inv Invoice) {
	b.applyDelta(effect{}, effect{stock: invoiceStockEffect(inv)})
}

// ReverseInvoiceStock undoes ApplyInvoiceStock.
func (b *Book) ReverseInvoiceStock(inv Invoice) {
	b.applyDelta(effect{stock: invoiceStockEffect(inv)}, effect{})
}
