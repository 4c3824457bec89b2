package core

import (
	"fmt"
	"slices"
	"strings"
)

// keyed is satisfied by every record the Book stores.
type keyed[T any] interface {
	key() string
	cloned() T
}

func (i InventoryItem) key() string { return i.ID }
func (i InventoryItem) cloned() InventoryItem { return i }

func (p Person) key() string { return p.ID }
func (p Person) cloned() Person { return p }

func (inv Invoice) key() string { return inv.ID }
func (inv Invoice) cloned() Invoice {
	inv.Items = slices.Clone(inv.Items)
	return inv
}

func (v Voucher) key() string { return v.ID }
func (v Voucher) cloned() Voucher { return v }

// collection keeps records in insertion order with an id index. Ids are
// unique within one collection.
type collection[T keyed[T]] struct {
	items []T
	index map[string]int
}

func newCollection[T keyed[T]](name string, items []T) (*collection[T], error) {
	c := &collection[T]{
		items: make([]T, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if err := c.append(item.cloned()); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return c, nil
}

func (c *collection[T]) find(id string) (T, bool) {
	pos, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[pos].cloned(), true
}

func (c *collection[T]) has(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *collection[T]) append(v T) error {
	id := v.key()
	if id == "" {
		return fmt.Errorf("empty id: %w", ErrInvalidInput)
	}
	if _, exists := c.index[id]; exists {
		return fmt.Errorf("id %q: %w", id, ErrDuplicateID)
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, v)
	return nil
}

// replace swaps the record stored under id. The replacement must carry the
// same id.
func (c *collection[T]) replace(id string, v T) error {
	pos, ok := c.index[id]
	if !ok {
		return fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	if v.key() != id {
		return fmt.Errorf("replacement id %q does not match %q: %w", v.key(), id, ErrInvalidInput)
	}
	c.items[pos] = v
	return nil
}

func (c *collection[T]) remove(id string) bool {
	pos, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = slices.Delete(c.items, pos, pos+1)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].key()] = i
	}
	return true
}

func (c *collection[T]) all() []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = item.cloned()
	}
	return out
}

func (c *collection[T]) len() int { return len(c.items) }

func (c *collection[T]) clone() *collection[T] {
	out := &collection[T]{
		items: make([]T, len(c.items)),
		index: make(map[string]int, len(c.index)),
	}
	for i, item := range c.items {
		out.items[i] = item.cloned()
		out.index[item.key()] = i
	}
	return out
}

// PersonKind selects the customer or the supplier collection.
type PersonKind int

const (
	Customer PersonKind = iota + 1
	Supplier
)

func (k PersonKind) String() string {
	switch k {
	case Customer:
		return "customer"
	case Supplier:
		return "supplier"
	default:
		return fmt.Sprintf("PersonKind(%d)", int(k))
	}
}

// Counterpart returns the collection a link from k points into.
func (k PersonKind) Counterpart() PersonKind {
	if k == Customer {
		return Supplier
	}
	return Customer
}

// ParsePersonKind accepts "customer", "customers", "supplier" or "suppliers".
func ParsePersonKind(s string) (PersonKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "customers":
		return Customer, nil
	case "supplier", "suppliers":
		return Supplier, nil
	}
	return 0, newValidationError("kind", s, "must be customer or supplier")
}

// Book is the entity store: the five collections plus settings and the
// numbering counters. It is not safe for concurrent use.
type Book struct {
	inventory *collection[InventoryItem]
	customers *collection[Person]
	suppliers *collection[Person]
	invoices  *collection[Invoice]
	vouchers  *collection[Voucher]
	settings  Settings
	seq       Sequences
}

// NewBook returns an empty book with default settings.
func NewBook() *Book {
	b, _ := BookFromSnapshot(Snapshot{Settings: DefaultSettings()})
	return b
}

func (b *Book) people(kind PersonKind) *collection[Person] {
	if kind == Supplier {
		return b.suppliers
	}
	return b.customers
}

// Clone returns a deep copy that shares no mutable state with b.
func (b *Book) Clone() *Book {
	return &Book{
		inventory: b.inventory.clone(),
		customers: b.customers.clone(),
		suppliers: b.suppliers.clone(),
		invoices:  b.invoices.clone(),
		vouchers:  b.vouchers.clone(),
		settings:  b.settings,
		seq:       b.seq,
	}
}

func (b *Book) Inventory() []InventoryItem { return b.inventory.all() }
func (b *Book) Customers() []Person { return b.customers.all() }
func (b *Book) Suppliers() []Person { return b.suppliers.all() }
func (b *Book) Invoices() []Invoice { return b.invoices.all() }
func (b *Book) Vouchers() []Voucher { return b.vouchers.all() }
func (b *Book) Settings() Settings { return b.settings }
func (b *Book) Sequences() Sequences { return b.seq }

// People returns the customers or the suppliers.
func (b *Book) People(kind PersonKind) []Person { return b.people(kind).all() }

func (b *Book) FindItem(id string) (InventoryItem, bool) { return b.inventory.find(id) }
func (b *Book) FindInvoice(id string) (Invoice, bool) { return b.invoices.find(id) }
func (b *Book) FindVoucher(id string) (Voucher, bool) { return b.vouchers.find(id) }

func (b *Book) FindPerson(kind PersonKind, id string) (Person, bool) {
	return b.people(kind).find(id)
}

// ResolvePerson looks id up in customers first, then suppliers.
func (b *Book) ResolvePerson(id string) (PersonKind, Person, bool) {
	if p, ok := b.customers.find(id); ok {
		return Customer, p, true
	}
	if p, ok := b.suppliers.find(id); ok {
		return Supplier, p, true
	}
	return 0, Person{}, false
}

// IsEmpty reports whether the book holds no inventory, invoices or vouchers.
func (b *Book) IsEmpty() bool {
	return b.inventory.len() == 0 && b.invoices.len() == 0 && b.vouchers.len() == 0
}
