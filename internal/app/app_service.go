package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"ledgerpro/internal/ai"
	"ledgerpro/internal/core"
	"ledgerpro/internal/excel"
	"ledgerpro/internal/persistence"

	"github.com/rs/zerolog"
)

// ErrAssistantUnavailable is returned by Ask when no model is configured.
var ErrAssistantUnavailable = errors.New("assistant is not configured")

// Store is the persistence the service writes through to.
type Store interface {
	Save(ctx context.Context, book *core.Book) error
	LoadAuto(ctx context.Context) (*core.Book, error)
}

type appService struct {
	mu     sync.Mutex
	ledger core.LedgerService
	store  Store
	agent  *ai.Agent
	log    zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil, in which case Ask returns ErrAssistantUnavailable.
func NewAppService(ledger core.LedgerService, store Store, agent *ai.Agent, log zerolog.Logger) ApplicationService {
	return &appService{
		ledger: ledger,
		store:  store,
		agent:  agent,
		log:    log,
	}
}

var _ persistence.BackupSource = (*appService)(nil)

// write runs fn under the lock and persists the book when fn succeeds.
func (s *appService) write(ctx context.Context, op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	s.persist(ctx, op)
	return nil
}

func (s *appService) persist(ctx context.Context, op string) {
	if err := s.store.Save(ctx, s.ledger.Book()); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("failed to persist ledger")
		return
	}
	s.log.Debug().Str("op", op).Msg("ledger persisted")
}

func (s *appService) read() *core.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Book().Clone()
}

func publicSettings(st core.Settings) core.Settings {
	st.PasswordHash = ""
	return st
}

func (s *appService) GetState(_ context.Context) (*StateResult, error) {
	snap := s.read().Snapshot()
	snap.Settings = publicSettings(snap.Settings)
	return &StateResult{Snapshot: snap}, nil
}

func (s *appService) GetSummary(_ context.Context, currency string) (*core.Summary, error) {
	sum := core.Summarize(s.read(), strings.TrimSpace(currency))
	return &sum, nil
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (s *appService) ListInventory(_ context.Context) (*InventoryListResult, error) {
	items := s.read().Inventory()
	low := 0
	for _, it := range items {
		if it.IsLowStock() {
			low++
		}
	}
	return &InventoryListResult{Items: items, LowStock: low}, nil
}

func (s *appService) AddInventoryItem(ctx context.Context, item core.InventoryItem) (*core.InventoryItem, error) {
	var out core.InventoryItem
	err := s.write(ctx, "add inventory item", func() (err error) {
		out, err = s.ledger.AddInventoryItem(item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) UpdateInventoryItem(ctx context.Context, item core.InventoryItem) (*core.InventoryItem, error) {
	var out core.InventoryItem
	err := s.write(ctx, "update inventory item", func() (err error) {
		out, err = s.ledger.UpdateInventoryItem(item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.write(ctx, "delete inventory item", func() error {
		return s.ledger.DeleteInventoryItem(id)
	})
}

func (s *appService) ImportInventory(ctx context.Context, r io.Reader) (*InventoryImportResult, error) {
	rows, err := excel.ParseInventoryRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}

	res := &InventoryImportResult{}
	err = s.write(ctx, "import inventory", func() error {
		before := s.ledger.Book().Clone()
		if err := s.importRows(rows, res); err != nil {
			s.ledger.Restore(before)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("added", res.Added).Int("updated", res.Updated).Msg("inventory imported")
	return res, nil
}

// importRows upserts rows by SKU. The caller restores the book when it fails
// so a rejected sheet leaves nothing behind.
func (s *appService) importRows(rows []core.InventoryItem, res *InventoryImportResult) error {
	bySKU := make(map[string]core.InventoryItem)
	for _, it := range s.ledger.Book().Inventory() {
		if it.SKU != "" {
			bySKU[it.SKU] = it
		}
	}
	for i, row := range rows {
		if existing, ok := bySKU[row.SKU]; ok && row.SKU != "" {
			row.ID = existing.ID
			row.Currency = existing.Currency
			row.ImageURL = existing.ImageURL
			if _, err := s.ledger.UpdateInventoryItem(row); err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			res.Updated++
			continue
		}
		added, err := s.ledger.AddInventoryItem(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if added.SKU != "" {
			bySKU[added.SKU] = added
		}
		res.Added++
	}
	return nil
}

func (s *appService) ExportInventory(_ context.Context, w io.Writer) error {
	return excel.WriteInventory(w, s.read().Inventory())
}

// ── People ───────────────────────────────────────────────────────────────────

func (s *appService) ListPeople(_ context.Context, kind core.PersonKind) (*PeopleListResult, error) {
	return &PeopleListResult{Kind: kind, People: s.read().People(kind)}, nil
}

func (s *appService) AddPerson(ctx context.Context, kind core.PersonKind, p core.Person) (*core.Person, error) {
	var out core.Person
	err := s.write(ctx, "add "+kind.String(), func() (err error) {
		out, err = s.ledger.AddPerson(kind, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) UpdatePerson(ctx context.Context, kind core.PersonKind, p core.Person) (*core.Person, error) {
	var out core.Person
	err := s.write(ctx, "update "+kind.String(), func() (err error) {
		out, err = s.ledger.UpdatePerson(kind, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) LinkPeople(ctx context.Context, req LinkRequest) error {
	return s.write(ctx, "link people", func() error {
		return s.ledger.LinkPeople(req.CustomerID, req.SupplierID)
	})
}

func (s *appService) UnlinkPeople(ctx context.Context, personID string, kind core.PersonKind) error {
	return s.write(ctx, "unlink people", func() error {
		return s.ledger.UnlinkPeople(personID, kind)
	})
}

func (s *appService) SettleAccounts(ctx context.Context, req LinkRequest) (*SettlementResult, error) {
	var st *core.Settlement
	err := s.write(ctx, "settle accounts", func() (err error) {
		st, err = s.ledger.SettleAccounts(req.CustomerID, req.SupplierID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SettlementResult{Settled: st != nil, Settlement: st}, nil
}

// ── Invoices & vouchers ──────────────────────────────────────────────────────

func (s *appService) ListInvoices(_ context.Context) (*InvoiceListResult, error) {
	return &InvoiceListResult{Invoices: s.read().Invoices()}, nil
}

func (s *appService) AddInvoice(ctx context.Context, inv core.Invoice) (*core.Invoice, error) {
	var out core.Invoice
	err := s.write(ctx, "add invoice", func() (err error) {
		out, err = s.ledger.AddInvoice(inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) UpdateInvoice(ctx context.Context, inv core.Invoice) (*core.Invoice, error) {
	var out core.Invoice
	err := s.write(ctx, "update invoice", func() (err error) {
		out, err = s.ledger.UpdateInvoice(inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) DeleteInvoice(ctx context.Context, id string) error {
	return s.write(ctx, "delete invoice", func() error {
		return s.ledger.DeleteInvoice(id)
	})
}

func (s *appService) ListVouchers(_ context.Context) (*VoucherListResult, error) {
	return &VoucherListResult{Vouchers: s.read().Vouchers()}, nil
}

func (s *appService) AddVoucher(ctx context.Context, v core.Voucher) (*core.Voucher, error) {
	var out core.Voucher
	err := s.write(ctx, "add voucher", func() (err error) {
		out, err = s.ledger.AddVoucher(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) UpdateVoucher(ctx context.Context, v core.Voucher) (*core.Voucher, error) {
	var out core.Voucher
	err := s.write(ctx, "update voucher", func() (err error) {
		out, err = s.ledger.UpdateVoucher(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *appService) DeleteVoucher(ctx context.Context, id string) error {
	return s.write(ctx, "delete voucher", func() error {
		return s.ledger.DeleteVoucher(id)
	})
}

// ── Settings ─────────────────────────────────────────────────────────────────

func (s *appService) GetSettings(_ context.Context) (*core.Settings, error) {
	st := publicSettings(s.read().Settings())
	return &st, nil
}

func (s *appService) UpdateSettings(ctx context.Context, in core.Settings) (*core.Settings, error) {
	var out core.Settings
	err := s.write(ctx, "update settings", func() error {
		cur := s.ledger.Book().Settings()
		in.IsPasswordEnabled = cur.IsPasswordEnabled
		in.PasswordHash = cur.PasswordHash
		in.LastBackupTimestamp = cur.LastBackupTimestamp
		var err error
		out, err = s.ledger.UpdateSettings(in)
		return err
	})
	if err != nil {
		return nil, err
	}
	out = publicSettings(out)
	return &out, nil
}

// ── Assistant ────────────────────────────────────────────────────────────────

// invoiceWriter lets the assistant add invoices through the locked service
// path, so the model call itself runs without holding the lock.
type invoiceWriter struct{ s *appService }

func (w invoiceWriter) AddInvoice(ctx context.Context, inv core.Invoice) (core.Invoice, error) {
	out, err := w.s.AddInvoice(ctx, inv)
	if err != nil {
		return core.Invoice{}, err
	}
	return *out, nil
}

func (s *appService) Ask(ctx context.Context, text string) (*ai.Reply, error) {
	if s.agent == nil {
		return nil, ErrAssistantUnavailable
	}
	snap := s.read().Snapshot()
	return s.agent.Ask(ctx, text, snap, invoiceWriter{s})
}

// ── Backup scheduler hooks ───────────────────────────────────────────────────

func (s *appService) BackupSnapshot(_ context.Context) (core.Snapshot, error) {
	return s.read().Snapshot(), nil
}

func (s *appService) RecordBackup(ctx context.Context, at time.Time) error {
	return s.write(ctx, "record backup", func() error {
		st := s.ledger.Book().Settings()
		st.LastBackupTimestamp = at.UnixMilli()
		_, err := s.ledger.UpdateSettings(st)
		return err
	})
}
