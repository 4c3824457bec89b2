package core

// effect is everything one document does to the derived quantities: person
// balances and stock levels.
type effect struct {
	balances []balanceDelta
	stock    []stockDelta
}

func (b *Book) invoiceEffect(inv Invoice) effect {
	return effect{
		balances: invoiceBalanceEffect(inv),
		stock:    invoiceStockEffect(inv),
	}
}

func (b *Book) voucherEffect(v Voucher) effect {
	return effect{balances: b.voucherBalanceEffect(v)}
}

// applyDelta reverses old and then applies next. Create passes a zero old,
// delete a zero next, and update passes both, so every lifecycle transition
// goes through the same reverse-then-apply path.
func (b *Book) applyDelta(old, next effect) {
	for _, d := range invertBalances(old.balances) {
		b.adjustBalance(d)
	}
	for _, d := range invertStock(old.stock) {
		b.adjustStock(d)
	}
	for _, d := range next.balances {
		b.adjustBalance(d)
	}
	for _, d := range next.stock {
		b.adjustStock(d)
	}
}
