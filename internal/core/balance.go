package core

import (
	"github.com/shopspring/decimal"
)

// balanceDelta is one signed change to one person's running balance.
type balanceDelta struct {
	kind     PersonKind
	personID string
	amount   decimal.Decimal
}

// invoiceBalanceEffect: only credit invoices touch a balance. A credit sale
// raises what the customer owes; a credit purchase raises what the business
// owes the supplier.
func invoiceBalanceEffect(inv Invoice) []balanceDelta {
	if inv.PaymentMethod != PaymentCredit {
		return nil
	}
	kind := Customer
	if inv.Type == InvoicePurchase {
		kind = Supplier
	}
	return []balanceDelta{{kind: kind, personID: inv.PersonID, amount: inv.Total}}
}

// voucherBalanceEffect decreases the balance of whichever collection the
// voucher's person resolves into, whatever the voucher type.
func (b *Book) voucherBalanceEffect(v Voucher) []balanceDelta {
	kind, _, ok := b.ResolvePerson(v.PersonID)
	if !ok {
		return nil
	}
	return []balanceDelta{{kind: kind, personID: v.PersonID, amount: v.Amount.Neg()}}
}

func invertBalances(ds []balanceDelta) []balanceDelta {
	out := make([]balanceDelta, len(ds))
	for i, d := range ds {
		d.amount = d.amount.Neg()
		out[i] = d
	}
	return out
}

// adjustBalance applies one delta. A person that no longer exists is skipped.
func (b *Book) adjustBalance(d balanceDelta) {
	people := b.people(d.kind)
	p, ok := people.find(d.personID)
	if !ok {
		return
	}
	p.Balance = p.Balance.Add(d.amount)
	_ = people.replace(p.ID, p)
}

// ApplyInvoiceEffect books a credit invoice's total against its person.
func (b *Book) ApplyInvoiceEffect(inv Invoice) {
	b.applyDelta(effect{}, effect{balances: invoiceBalanceEffect(inv)})
}

// ReverseInvoiceEffect is the exact inverse of ApplyInvoiceEffect.
func (b *Book) ReverseInvoiceEffect(inv Invoice) {
	b.applyDelta(effect{balances: invoiceBalanceEffect(inv)}, effect{})
}

// ApplyVoucherEffect decreases the voucher person's balance by its amount.
func (b *Book) ApplyVoucherEffect(v Voucher) {
	b.applyDelta(effect{}, effect{balances: b.voucherBalanceEffect(v)})
}

// ReverseVoucherEffect is the exact inverse of ApplyVoucherEffect.
func (b *Book) ReverseVoucherEffect(v Voucher) {
	b.applyDelta(effect{balances: b.voucherBalanceEffect(v)}, effect{})
}
