// Package cli is the cobra command tree of the ledgerpro binary.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"ledgerpro/internal/adapters/repl"
	"ledgerpro/internal/bootstrap"
	"ledgerpro/internal/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// Opener loads the runtime the commands operate on.
type Opener func(ctx context.Context) (*bootstrap.Runtime, error)

// NewRootCommand builds the command tree. Without a subcommand the root
// starts the interactive REPL.
func NewRootCommand(open Opener) *cobra.Command {
	var rt *bootstrap.Runtime

	root := &cobra.Command{
		Use:   "ledgerpro",
		Short: "LedgerPro - bookkeeping for small shops",
		Long: `LedgerPro keeps inventory, customer and supplier balances, invoices and
payment vouchers consistent with each other.

Run without arguments for the interactive shell, or use a subcommand for
one-shot operations and the HTTP server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rt, err = open(cmd.Context())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt != nil {
				rt.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.Run(cmd.Context(), rt.Service, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
			return nil
		},
	}

	runtime := func() *bootstrap.Runtime { return rt }
	root.AddCommand(
		newServeCommand(runtime),
		newStockCommand(runtime),
		newPeopleCommand(runtime),
		newInvoicesCommand(runtime),
		newSummaryCommand(runtime),
		newAskCommand(runtime),
		newExportCommand(runtime),
		newImportCommand(runtime),
		newImportInventoryCommand(runtime),
		newExportInventoryCommand(runtime),
		newRestoreAutoCommand(runtime),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context, open Opener) {
	log := logger.WithComponent("cmd")

	if err := NewRootCommand(open).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
