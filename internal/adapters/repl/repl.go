package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ledgerpro/internal/app"
	"ledgerpro/internal/core"
)

var errExit = errors.New("exit")

// Run starts the interactive loop. Slash commands are dispatched
// deterministically; any other input goes to the assistant. Run returns when
// the user types /exit or the reader reaches EOF.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer) {
	st, err := svc.GetSettings(ctx)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(out, "LedgerPro")
	fmt.Fprintf(out, "Shop: %s (%s)\n", st.ShopName, st.Currency)
	fmt.Fprintln(out, "Describe a sale or purchase, or use /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "stock", "inventory":
			result, err := svc.ListInventory(ctx)
			if err != nil {
				return err
			}
			PrintStock(out, result)

		case "people", "customers", "suppliers":
			kind := core.Customer
			if cmd == "suppliers" {
				kind = core.Supplier
			}
			if cmd == "people" && len(args) > 0 {
				k, err := core.ParsePersonKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}
			result, err := svc.ListPeople(ctx, kind)
			if err != nil {
				return err
			}
			PrintPeople(out, result)

		case "invoices":
			result, err := svc.ListInvoices(ctx)
			if err != nil {
				return err
			}
			PrintInvoices(out, result)

		case "vouchers":
			result, err := svc.ListVouchers(ctx)
			if err != nil {
				return err
			}
			PrintVouchers(out, result)

		case "summary", "sum":
			currency := ""
			if len(args) > 0 {
				currency = args[0]
			}
			sum, err := svc.GetSummary(ctx, currency)
			if err != nil {
				return err
			}
			PrintSummary(out, sum)

		case "settle":
			return settleWizard(ctx, reader, out, svc)

		case "help", "h":
			printHelp(out)

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Fprint(out, "\n> ")
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if readErr != nil {
				return
			}
			continue
		}

		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if errors.Is(err, errExit) {
					fmt.Fprintln(out, "Goodbye!")
					return
				}
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}

		fmt.Fprintln(out, "[AI] Processing...")
		reply, err := svc.Ask(ctx, input)
		if err != nil {
			if errors.Is(err, app.ErrAssistantUnavailable) {
				fmt.Fprintln(out, "The assistant is not configured. Set OPENAI_API_KEY or use /help.")
				continue
			}
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		PrintReply(out, reply)

		if readErr != nil {
			return
		}
	}
}
