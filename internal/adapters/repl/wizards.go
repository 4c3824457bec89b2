package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ledgerpro/internal/app"
	"ledgerpro/internal/core"
)

// settleWizard asks for a customer and a supplier by name, shows what would
// be offset and settles the pair on confirmation.
func settleWizard(ctx context.Context, reader *bufio.Reader, out io.Writer, svc app.ApplicationService) error {
	customer, ok, err := pickPerson(ctx, reader, out, svc, core.Customer)
	if err != nil || !ok {
		return err
	}

	var supplier core.Person
	if customer.LinkedPersonID != "" {
		list, err := svc.ListPeople(ctx, core.Supplier)
		if err != nil {
			return err
		}
		for _, p := range list.People {
			if p.ID == customer.LinkedPersonID {
				supplier = p
			}
		}
		if supplier.ID != "" {
			fmt.Fprintf(out, "  Linked supplier: %s\n", supplier.Name)
		}
	}
	if supplier.ID == "" {
		supplier, ok, err = pickPerson(ctx, reader, out, svc, core.Supplier)
		if err != nil || !ok {
			return err
		}
	}

	fmt.Fprintf(out, "  %s owes %s, %s is owed %s.\n",
		customer.Name, customer.Balance.StringFixed(2), supplier.Name, supplier.Balance.StringFixed(2))
	fmt.Fprint(out, "Settle? (y/n): ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice != "y" && choice != "yes" {
		fmt.Fprintln(out, "Settlement cancelled.")
		return nil
	}

	res, err := svc.SettleAccounts(ctx, app.LinkRequest{CustomerID: customer.ID, SupplierID: supplier.ID})
	if err != nil {
		return err
	}
	if !res.Settled {
		fmt.Fprintln(out, "Nothing to settle.")
		return nil
	}
	fmt.Fprintf(out, "Settled %s: %s and %s written.\n",
		res.Settlement.Amount.StringFixed(2), res.Settlement.Receipt.Number, res.Settlement.Payment.Number)
	return nil
}

// pickPerson prompts until the name matches exactly one person of kind.
// ok is false when the user cancels.
func pickPerson(ctx context.Context, reader *bufio.Reader, out io.Writer, svc app.ApplicationService, kind core.PersonKind) (core.Person, bool, error) {
	list, err := svc.ListPeople(ctx, kind)
	if err != nil {
		return core.Person{}, false, err
	}
	for {
		fmt.Fprintf(out, "  %s name (blank to cancel): ", kind)
		raw, readErr := reader.ReadString('\n')
		raw = strings.ToLower(strings.TrimSpace(raw))
		if raw == "" || raw == "cancel" {
			fmt.Fprintln(out, "Settlement cancelled.")
			return core.Person{}, false, nil
		}

		var matches []core.Person
		for _, p := range list.People {
			if strings.Contains(strings.ToLower(p.Name), raw) {
				matches = append(matches, p)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], true, nil
		case 0:
			fmt.Fprintf(out, "  No %s matches %q.\n", kind, raw)
		default:
			fmt.Fprintf(out, "  %d matches, be more specific.\n", len(matches))
		}
		if readErr != nil {
			return core.Person{}, false, nil
		}
	}
}
