package core

import "fmt"

// Finding is one referential problem Audit found in a book.
type Finding struct {
	Ref     string `json:"ref"`
	Message string `json:"message"`
}

func (f Finding) String() string { return f.Ref + ": " + f.Message }

// Audit checks cross-references the ledger does not enforce on its own:
// documents that name deleted people or items, one-sided links, and reused
// document numbers. Dangling item references are expected after an item is
// deleted; they are reported so stock reversals that will be skipped are
// visible.
func Audit(b *Book) []Finding {
	var out []Finding
	add := func(ref, format string, args ...any) {
		out = append(out, Finding{Ref: ref, Message: fmt.Sprintf(format, args...)})
	}

	numbers := make(map[string]string)
	seen := func(number, id string) {
		if number == "" {
			return
		}
		if other, ok := numbers[number]; ok {
			add(number, "number used by both %s and %s", other, id)
			return
		}
		numbers[number] = id
	}

	for _, inv := range b.Invoices() {
		seen(inv.Number, inv.ID)
		kind := Customer
		if inv.Type == InvoicePurchase {
			kind = Supplier
		}
		if _, ok := b.FindPerson(kind, inv.PersonID); !ok {
			add(inv.Number, "%s %q does not exist", kind, inv.PersonID)
		}
		for _, line := range inv.Items {
			if _, ok := b.FindItem(line.ItemID); !ok {
				add(inv.Number, "line %q refers to deleted item %q", line.Name, line.ItemID)
			}
		}
	}

	for _, v := range b.Vouchers() {
		seen(v.Number, v.ID)
		if _, _, ok := b.ResolvePerson(v.PersonID); !ok {
			add(v.Number, "person %q does not exist", v.PersonID)
		}
	}

	for _, kind := range []PersonKind{Customer, Supplier} {
		for _, p := range b.People(kind) {
			if p.LinkedPersonID == "" {
				continue
			}
			partner, ok := b.FindPerson(kind.Counterpart(), p.LinkedPersonID)
			switch {
			case !ok:
				add(p.Name, "linked %s %q does not exist", kind.Counterpart(), p.LinkedPersonID)
			case partner.LinkedPersonID != p.ID:
				add(p.Name, "link to %s is not mutual", partner.Name)
			}
		}
	}
	return out
}
