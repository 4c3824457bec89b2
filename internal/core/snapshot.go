package core

// Snapshot is the serialised form of a Book: the single document the
// persistence layer stores, exports and imports.
type Snapshot struct {
	Inventory []InventoryItem `json:"inventory"`
	Customers []Person        `json:"customers"`
	Suppliers []Person        `json:"suppliers"`
	Invoices  []Invoice       `json:"invoices"`
	Vouchers  []Voucher       `json:"vouchers"`
	Settings  Settings        `json:"settings"`
	Sequences *Sequences      `json:"sequences,omitempty"`
}

// BookFromSnapshot builds a Book, rejecting duplicate ids. Missing settings
// fields fall back to defaults, and snapshots written without counters get
// them seeded from the stored document numbers.
func BookFromSnapshot(s Snapshot) (*Book, error) {
	b := &Book{settings: mergeSettings(s.Settings)}
	var err error
	if b.inventory, err = newCollection("inventory", s.Inventory); err != nil {
		return nil, err
	}
	if b.customers, err = newCollection("customers", s.Customers); err != nil {
		return nil, err
	}
	if b.suppliers, err = newCollection("suppliers", s.Suppliers); err != nil {
		return nil, err
	}
	if b.invoices, err = newCollection("invoices", s.Invoices); err != nil {
		return nil, err
	}
	if b.vouchers, err = newCollection("vouchers", s.Vouchers); err != nil {
		return nil, err
	}

	seeded := seedSequences(s.Invoices, s.Vouchers)
	if s.Sequences != nil {
		b.seq = Sequences{
			Invoice: max(s.Sequences.Invoice, seeded.Invoice),
			Voucher: max(s.Sequences.Voucher, seeded.Voucher),
		}
	} else {
		b.seq = seeded
	}
	return b, nil
}

// Snapshot returns a deep copy of the book's state.
func (b *Book) Snapshot() Snapshot {
	seq := b.seq
	return Snapshot{
		Inventory: b.inventory.all(),
		Customers: b.customers.all(),
		Suppliers: b.suppliers.all(),
		Invoices:  b.invoices.all(),
		Vouchers:  b.vouchers.all(),
		Settings:  b.settings,
		Sequences: &seq,
	}
}

func mergeSettings(s Settings) Settings {
	def := DefaultSettings()
	if s.ShopName == "" {
		s.ShopName = def.ShopName
	}
	if s.ShopNameEn == "" {
		s.ShopNameEn = def.ShopNameEn
	}
	if s.Currency == "" {
		s.Currency = def.Currency
	}
	if s.AutoBackupInterval == "" {
		s.AutoBackupInterval = def.AutoBackupInterval
	}
	return s
}
