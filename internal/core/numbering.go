package core

import (
	"strconv"
	"strings"
)

const (
	invoiceNumberBase = 1001
	voucherNumberBase = 5001

	invoicePrefix = "INV-"
	receiptPrefix = "REC-"
	paymentPrefix = "PAY-"
)

// Sequences are the monotonic numbering counters. A counter only ever grows,
// so deleting a document never frees its number for reuse.
type Sequences struct {
	Invoice int `json:"invoice"`
	Voucher int `json:"voucher"`
}

func (b *Book) nextInvoiceNumber() string {
	n := invoiceNumberBase + b.seq.Invoice
	b.seq.Invoice++
	return invoicePrefix + strconv.Itoa(n)
}

// nextVoucherNumber allocates from the counter receipts and payments share.
func (b *Book) nextVoucherNumber(t VoucherType) string {
	n := voucherNumberBase + b.seq.Voucher
	b.seq.Voucher++
	return voucherPrefix(t) + strconv.Itoa(n)
}

func voucherPrefix(t VoucherType) string {
	if t == VoucherReceipt {
		return receiptPrefix
	}
	return paymentPrefix
}

// seedSequences derives counters for documents stored before counters were
// persisted: past both the collection size and the highest number in use.
func seedSequences(invoices []Invoice, vouchers []Voucher) Sequences {
	seq := Sequences{Invoice: len(invoices), Voucher: len(vouchers)}
	for _, inv := range invoices {
		if n, ok := parseNumber(inv.Number, invoicePrefix); ok {
			seq.Invoice = max(seq.Invoice, n-invoiceNumberBase+1)
		}
	}
	for _, v := range vouchers {
		n, ok := parseNumber(v.Number, receiptPrefix)
		if !ok {
			n, ok = parseNumber(v.Number, paymentPrefix)
		}
		if ok {
			seq.Voucher = max(seq.Voucher, n-voucherNumberBase+1)
		}
	}
	return seq
}

func parseNumber(number, prefix string) (int, bool) {
	rest, found := strings.CutPrefix(number, prefix)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
