package core

// AddVoucher records a voucher and decreases its person's balance by the
// amount.
func (l *Ledger) AddVoucher(v Voucher) (Voucher, error) {
	v.ID = l.newID()
	v.Number = ""
	l.fillVoucherDefaults(&v)
	if err := validateVoucher(v); err != nil {
		return Voucher{}, err
	}

	err := l.mutate(func(b *Book) error {
		v.Number = b.nextVoucherNumber(v.Type)
		if err := b.vouchers.append(v); err != nil {
			return err
		}
		b.applyDelta(effect{}, b.voucherEffect(v))
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	return v, nil
}

// UpdateVoucher gives the old amount back to the old person and takes the new
// amount from the new person, which may sit in the other collection.
func (l *Ledger) UpdateVoucher(v Voucher) (Voucher, error) {
	l.fillVoucherDefaults(&v)

	err := l.mutate(func(b *Book) error {
		old, ok := b.vouchers.find(v.ID)
		if !ok {
			return notFound("voucher", v.ID)
		}
		v.Number = old.Number
		if err := validateVoucher(v); err != nil {
			return err
		}
		b.applyDelta(b.voucherEffect(old), b.voucherEffect(v))
		return b.vouchers.replace(v.ID, v)
	})
	if err != nil {
		return Voucher{}, err
	}
	return v, nil
}

func (l *Ledger) DeleteVoucher(id string) error {
	return l.mutate(func(b *Book) error {
		old, ok := b.vouchers.find(id)
		if !ok {
			return notFound("voucher", id)
		}
		b.applyDelta(b.voucherEffect(old), effect{})
		b.vouchers.remove(id)
		return nil
	})
}

func (l *Ledger) fillVoucherDefaults(v *Voucher) {
	if v.Date == "" {
		v.Date = l.today()
	}
	if v.Currency == "" {
		v.Currency = l.book.settings.Currency
	}
	if v.PaymentMethod == "" {
		v.PaymentMethod = string(PaymentCash)
	}
}
