package core

import (
	"github.com/shopspring/decimal"
)

// AddInvoice records a new invoice and applies its stock and balance effects
// once. The id and number on the input are ignored.
func (l *Ledger) AddInvoice(inv Invoice) (Invoice, error) {
	inv.ID = l.newID()
	inv.Number = ""
	l.fillInvoiceDefaults(&inv)
	recalculateInvoice(&inv)
	if err := validateInvoice(inv); err != nil {
		return Invoice{}, err
	}

	err := l.mutate(func(b *Book) error {
		inv.Number = b.nextInvoiceNumber()
		if err := b.invoices.append(inv); err != nil {
			return err
		}
		b.applyDelta(effect{}, b.invoiceEffect(inv))
		return nil
	})
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// UpdateInvoice reverses the stored invoice's effects, applies the new
// version's and replaces the record. Id and number are kept from the stored
// record.
func (l *Ledger) UpdateInvoice(inv Invoice) (Invoice, error) {
	l.fillInvoiceDefaults(&inv)
	recalculateInvoice(&inv)

	err := l.mutate(func(b *Book) error {
		old, ok := b.invoices.find(inv.ID)
		if !ok {
			return notFound("invoice", inv.ID)
		}
		inv.Number = old.Number
		if err := validateInvoice(inv); err != nil {
			return err
		}
		b.applyDelta(b.invoiceEffect(old), b.invoiceEffect(inv))
		return b.invoices.replace(inv.ID, inv)
	})
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// DeleteInvoice reverses the stored invoice's effects and removes it.
func (l *Ledger) DeleteInvoice(id string) error {
	return l.mutate(func(b *Book) error {
		old, ok := b.invoices.find(id)
		if !ok {
			return notFound("invoice", id)
		}
		b.applyDelta(b.invoiceEffect(old), effect{})
		b.invoices.remove(id)
		return nil
	})
}

// fillInvoiceDefaults works on its own copy of the lines; the caller's slice
// is never written.
func (l *Ledger) fillInvoiceDefaults(inv *Invoice) {
	if inv.Date == "" {
		inv.Date = l.today()
	}
	if inv.Currency == "" {
		inv.Currency = l.book.settings.Currency
	}
	inv.Items = append([]InvoiceItem(nil), inv.Items...)
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = l.newID()
		}
	}
}

// recalculateInvoice derives line totals, subtotal and total from the lines
// and the discount. Stored totals are never trusted.
func recalculateInvoice(inv *Invoice) {
	subtotal := decimal.Zero
	for i, line := range inv.Items {
		line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		inv.Items[i] = line
		subtotal = subtotal.Add(line.Total)
	}
	inv.Subtotal = subtotal
	inv.Total = decimal.Max(decimal.Zero, subtotal.Sub(inv.Discount))
}
