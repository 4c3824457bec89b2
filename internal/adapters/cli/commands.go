package cli

import (
	"fmt"
	"os"
	"strings"

	"ledgerpro/internal/adapters/repl"
	"ledgerpro/internal/bootstrap"
	"ledgerpro/internal/core"
	"ledgerpro/internal/logger"

	"github.com/spf13/cobra"
)

type runtimeFunc func() *bootstrap.Runtime

func newStockCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "stock",
		Aliases: []string{"inventory"},
		Short:   "List inventory with low-stock flags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt().Service.ListInventory(cmd.Context())
			if err != nil {
				return err
			}
			repl.PrintStock(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newPeopleCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "people [customers|suppliers]",
		Short: "List customer or supplier balances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := core.Customer
			if len(args) == 1 {
				k, err := core.ParsePersonKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}
			res, err := rt().Service.ListPeople(cmd.Context(), kind)
			if err != nil {
				return err
			}
			repl.PrintPeople(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newInvoicesCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt().Service.ListInvoices(cmd.Context())
			if err != nil {
				return err
			}
			repl.PrintInvoices(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newSummaryCommand(rt runtimeFunc) *cobra.Command {
	var currency string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show sales, profit, receivables, payables and stock value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := rt().Service.GetSummary(cmd.Context(), currency)
			if err != nil {
				return err
			}
			repl.PrintSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "currency to report (default: the configured currency)")
	return cmd
}

func newAskCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <request>",
		Short:   "Ask the assistant to record a sale or purchase",
		Example: `  ledgerpro ask "sold 3 bags of rice to Noor Bakery on credit"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := rt().Service.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			repl.PrintReply(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

func newExportCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the whole ledger as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rt().Service.ExportData(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the ledger with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if err := rt().Service.ImportData(cmd.Context(), data); err != nil {
				return err
			}
			importLog := logger.WithComponent("import")
			importLog.Info().Str("file", args[0]).Msg("backup imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		},
	}
}

func newImportInventoryCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import-inventory <xlsx>",
		Short: "Add or update inventory items from a spreadsheet",
		Long: `Reads the first sheet of an xlsx workbook. Rows whose SKU matches an
existing item update it; all other rows are added as new items. Header
names may be English or Arabic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := rt().Service.ImportInventory(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d, updated %d\n", res.Added, res.Updated)
			return nil
		},
	}
}

func newExportInventoryCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export-inventory <xlsx>",
		Short: "Write the inventory to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			if err := rt().Service.ExportInventory(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newRestoreAutoCommand(rt runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "restore-auto",
		Short: "Replace the ledger with the last automatic safety copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt().Service.RestoreAutoBackup(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Restored the automatic backup.")
			return nil
		},
	}
}
