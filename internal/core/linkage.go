package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settlement is the result of netting a customer's debt against what the
// business owes the linked supplier.
type Settlement struct {
	Amount  decimal.Decimal `json:"amount"`
	Receipt Voucher         `json:"receipt"`
	Payment Voucher         `json:"payment"`
}

// LinkPeople pairs a customer with a supplier. An existing link on either
// side is replaced, and the partner it pointed at is unlinked so links stay
// mutual.
func (l *Ledger) LinkPeople(customerID, supplierID string) error {
	return l.mutate(func(b *Book) error {
		customer, ok := b.customers.find(customerID)
		if !ok {
			return notFound(Customer.String(), customerID)
		}
		supplier, ok := b.suppliers.find(supplierID)
		if !ok {
			return notFound(Supplier.String(), supplierID)
		}

		b.clearLink(Supplier, customer.LinkedPersonID, customerID)
		b.clearLink(Customer, supplier.LinkedPersonID, supplierID)

		customer.LinkedPersonID = supplierID
		supplier.LinkedPersonID = customerID
		if err := b.customers.replace(customerID, customer); err != nil {
			return err
		}
		return b.suppliers.replace(supplierID, supplier)
	})
}

// UnlinkPeople clears the link of the given person and of its partner. A
// person with no link is left as it is.
func (l *Ledger) UnlinkPeople(personID string, kind PersonKind) error {
	return l.mutate(func(b *Book) error {
		people := b.people(kind)
		p, ok := people.find(personID)
		if !ok {
			return notFound(kind.String(), personID)
		}
		if p.LinkedPersonID == "" {
			return nil
		}
		b.clearLink(kind.Counterpart(), p.LinkedPersonID, personID)
		p.LinkedPersonID = ""
		return people.replace(personID, p)
	})
}

// clearLink drops the link of person id in kind's collection if it still
// points at partnerID.
func (b *Book) clearLink(kind PersonKind, id, partnerID string) {
	if id == "" {
		return
	}
	people := b.people(kind)
	p, ok := people.find(id)
	if !ok || p.LinkedPersonID != partnerID {
		return
	}
	p.LinkedPersonID = ""
	_ = people.replace(id, p)
}

// SettleAccounts offsets the smaller of the two balances. Both balances drop
// by that amount and a receipt and a payment voucher record the offset. When
// either balance is not positive nothing happens and the result is nil.
func (l *Ledger) SettleAccounts(customerID, supplierID string) (*Settlement, error) {
	var out *Settlement
	err := l.mutate(func(b *Book) error {
		customer, ok := b.customers.find(customerID)
		if !ok {
			return notFound(Customer.String(), customerID)
		}
		supplier, ok := b.suppliers.find(supplierID)
		if !ok {
			return notFound(Supplier.String(), supplierID)
		}

		amount := decimal.Min(customer.Balance, supplier.Balance)
		if !amount.IsPositive() {
			return nil
		}

		customer.Balance = customer.Balance.Sub(amount)
		supplier.Balance = supplier.Balance.Sub(amount)
		if err := b.customers.replace(customerID, customer); err != nil {
			return err
		}
		if err := b.suppliers.replace(supplierID, supplier); err != nil {
			return err
		}

		date := l.today()
		currency := b.settings.Currency
		// The balances above already carry the vouchers' effect, so the
		// vouchers are stored without going through applyDelta.
		receipt := Voucher{
			ID:            l.newID(),
			Number:        b.nextVoucherNumber(VoucherReceipt),
			Date:          date,
			Type:          VoucherReceipt,
			PersonID:      customerID,
			Amount:        amount,
			PaymentMethod: SettlementMethod,
			Currency:      currency,
			Notes:         fmt.Sprintf("Settlement offset against supplier account: %s", supplier.Name),
		}
		payment := Voucher{
			ID:            l.newID(),
			Number:        b.nextVoucherNumber(VoucherPayment),
			Date:          date,
			Type:          VoucherPayment,
			PersonID:      supplierID,
			Amount:        amount,
			PaymentMethod: SettlementMethod,
			Currency:      currency,
			Notes:         fmt.Sprintf("Settlement offset against customer account: %s", customer.Name),
		}
		if err := b.vouchers.append(receipt); err != nil {
			return err
		}
		if err := b.vouchers.append(payment); err != nil {
			return err
		}

		out = &Settlement{Amount: amount, Receipt: receipt, Payment: payment}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
