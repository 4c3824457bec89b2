package app

import (
	"context"
	"io"
	"time"

	"ledgerpro/internal/ai"
	"ledgerpro/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
//
// Every mutating method persists the book before returning. A failed save is
// logged and does not undo the change.
type ApplicationService interface {
	// GetState returns the whole book with the password hash removed.
	GetState(ctx context.Context) (*StateResult, error)

	// GetSummary returns the dashboard figures for currency; empty means the
	// configured default currency.
	GetSummary(ctx context.Context, currency string) (*core.Summary, error)

	ListInventory(ctx context.Context) (*InventoryListResult, error)
	AddInventoryItem(ctx context.Context, item core.InventoryItem) (*core.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item core.InventoryItem) (*core.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id string) error

	// ImportInventory adds the rows of an xlsx sheet. A row whose SKU matches
	// an existing item replaces that item's details and stock count.
	ImportInventory(ctx context.Context, r io.Reader) (*InventoryImportResult, error)

	// ExportInventory writes the inventory as an xlsx workbook.
	ExportInventory(ctx context.Context, w io.Writer) error

	ListPeople(ctx context.Context, kind core.PersonKind) (*PeopleListResult, error)
	AddPerson(ctx context.Context, kind core.PersonKind, p core.Person) (*core.Person, error)
	UpdatePerson(ctx context.Context, kind core.PersonKind, p core.Person) (*core.Person, error)
	LinkPeople(ctx context.Context, req LinkRequest) error
	UnlinkPeople(ctx context.Context, personID string, kind core.PersonKind) error

	// SettleAccounts nets a customer against a supplier. Settled is false when
	// there was nothing to offset.
	SettleAccounts(ctx context.Context, req LinkRequest) (*SettlementResult, error)

	ListInvoices(ctx context.Context) (*InvoiceListResult, error)
	AddInvoice(ctx context.Context, inv core.Invoice) (*core.Invoice, error)
	UpdateInvoice(ctx context.Context, inv core.Invoice) (*core.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error

	ListVouchers(ctx context.Context) (*VoucherListResult, error)
	AddVoucher(ctx context.Context, v core.Voucher) (*core.Voucher, error)
	UpdateVoucher(ctx context.Context, v core.Voucher) (*core.Voucher, error)
	DeleteVoucher(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*core.Settings, error)

	// UpdateSettings replaces the branding and preference fields. Password and
	// backup bookkeeping fields are kept from the stored settings.
	UpdateSettings(ctx context.Context, s core.Settings) (*core.Settings, error)

	// SetPassword enables, changes or disables the password gate.
	SetPassword(ctx context.Context, req SetPasswordRequest) error

	// VerifyPassword reports whether password opens the gate. It returns
	// ErrInvalidPassword on mismatch and true when the gate is disabled.
	VerifyPassword(ctx context.Context, password string) (bool, error)

	// ExportData returns the whole book as the JSON backup document.
	ExportData(ctx context.Context) ([]byte, error)

	// ImportData replaces the book with a backup document. A document that is
	// not a valid snapshot is rejected and the book is left untouched.
	ImportData(ctx context.Context, data []byte) error

	// RestoreAutoBackup replaces the book with the automatic safety copy.
	RestoreAutoBackup(ctx context.Context) error

	// ClearData resets the book to an empty one with default settings. The
	// automatic safety copy is kept.
	ClearData(ctx context.Context) error

	// Ask routes a natural-language request through the assistant.
	Ask(ctx context.Context, text string) (*ai.Reply, error)

	// BackupSnapshot and RecordBackup let the backup scheduler read the book
	// and stamp the last backup time.
	BackupSnapshot(ctx context.Context) (core.Snapshot, error)
	RecordBackup(ctx context.Context, at time.Time) error
}
