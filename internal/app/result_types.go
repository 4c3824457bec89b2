package app

import "ledgerpro/internal/core"

// StateResult is returned by GetState.
type StateResult struct {
	Snapshot core.Snapshot
}

// InventoryListResult is returned by ListInventory.
type InventoryListResult struct {
	Items    []core.InventoryItem
	LowStock int
}

// InventoryImportResult is returned by ImportInventory.
type InventoryImportResult struct {
	Added   int
	Updated int
}

// PeopleListResult is returned by ListPeople.
type PeopleListResult struct {
	Kind   core.PersonKind
	People []core.Person
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice
}

// VoucherListResult is returned by ListVouchers.
type VoucherListResult struct {
	Vouchers []core.Voucher
}

// SettlementResult is returned by SettleAccounts.
type SettlementResult struct {
	Settled    bool
	Settlement *core.Settlement
}
