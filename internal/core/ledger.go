package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// LedgerService is the ledger mutation engine: every operation that changes
// the book goes through it so stock levels, balances and document numbers
// stay consistent with the documents.
type LedgerService interface {
	AddInventoryItem(item InventoryItem) (InventoryItem, error)
	UpdateInventoryItem(item InventoryItem) (InventoryItem, error)
	DeleteInventoryItem(id string) error

	AddPerson(kind PersonKind, p Person) (Person, error)
	UpdatePerson(kind PersonKind, p Person) (Person, error)
	LinkPeople(customerID, supplierID string) error
	UnlinkPeople(personID string, kind PersonKind) error
	SettleAccounts(customerID, supplierID string) (*Settlement, error)

	AddInvoice(inv Invoice) (Invoice, error)
	UpdateInvoice(inv Invoice) (Invoice, error)
	DeleteInvoice(id string) error

	AddVoucher(v Voucher) (Voucher, error)
	UpdateVoucher(v Voucher) (Voucher, error)
	DeleteVoucher(id string) error

	UpdateSettings(s Settings) (Settings, error)
	Restore(b *Book)
	Book() *Book
}

// Ledger implements LedgerService over one Book. It is not safe for
// concurrent use; callers serialise access.
type Ledger struct {
	book  *Book
	now   func() time.Time
	newID func() string
}

type Option func(*Ledger)

// WithClock overrides the clock used for default document dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides how new record ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

func NewLedger(book *Book, opts ...Option) *Ledger {
	if book == nil {
		book = NewBook()
	}
	l := &Ledger{book: book, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Book exposes the current state for reading. The pointer stays valid across
// mutations.
func (l *Ledger) Book() *Book { return l.book }

// Restore replaces the whole state, as an import or a backup restore does.
func (l *Ledger) Restore(b *Book) {
	*l.book = *b.Clone()
}

// mutate runs fn against a working copy and commits it only when fn succeeds,
// so a rejected operation leaves the book exactly as it was.
func (l *Ledger) mutate(fn func(b *Book) error) error {
	next := l.book.Clone()
	if err := fn(next); err != nil {
		return err
	}
	*l.book = *next
	return nil
}

func (l *Ledger) today() string {
	return l.now().Format(dateLayout)
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (l *Ledger) AddInventoryItem(item InventoryItem) (InventoryItem, error) {
	item.ID = l.newID()
	if err := validateInventoryItem(item); err != nil {
		return InventoryItem{}, err
	}
	err := l.mutate(func(b *Book) error {
		return b.inventory.append(item)
	})
	if err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

func (l *Ledger) UpdateInventoryItem(item InventoryItem) (InventoryItem, error) {
	if err := validateInventoryItem(item); err != nil {
		return InventoryItem{}, err
	}
	err := l.mutate(func(b *Book) error {
		if !b.inventory.has(item.ID) {
			return notFound("inventory item", item.ID)
		}
		return b.inventory.replace(item.ID, item)
	})
	if err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

// DeleteInventoryItem removes the item without checking invoices that still
// reference it; those lines simply stop resolving.
func (l *Ledger) DeleteInventoryItem(id string) error {
	return l.mutate(func(b *Book) error {
		if !b.inventory.remove(id) {
			return notFound("inventory item", id)
		}
		return nil
	})
}

// ── People ───────────────────────────────────────────────────────────────────

// AddPerson appends a customer or supplier with a zero balance and no link.
func (l *Ledger) AddPerson(kind PersonKind, p Person) (Person, error) {
	p.ID = l.newID()
	p.Balance = decimal.Zero
	p.LinkedPersonID = ""
	if err := validatePerson(p); err != nil {
		return Person{}, err
	}
	err := l.mutate(func(b *Book) error {
		return b.people(kind).append(p)
	})
	if err != nil {
		return Person{}, err
	}
	return p, nil
}

// UpdatePerson replaces the contact details of a stored person. Balance and
// link are owned by the ledger and carried over from the stored record.
func (l *Ledger) UpdatePerson(kind PersonKind, p Person) (Person, error) {
	if err := validatePerson(p); err != nil {
		return Person{}, err
	}
	err := l.mutate(func(b *Book) error {
		people := b.people(kind)
		old, ok := people.find(p.ID)
		if !ok {
			return notFound(kind.String(), p.ID)
		}
		p.Balance = old.Balance
		p.LinkedPersonID = old.LinkedPersonID
		return people.replace(p.ID, p)
	})
	if err != nil {
		return Person{}, err
	}
	return p, nil
}

// ── Settings ─────────────────────────────────────────────────────────────────

func (l *Ledger) UpdateSettings(s Settings) (Settings, error) {
	s = mergeSettings(s)
	if err := ValidateSettings(s); err != nil {
		return Settings{}, err
	}
	l.book.settings = s
	return s, nil
}
