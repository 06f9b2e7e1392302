package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"recipewatch/internal/config"
	"recipewatch/internal/ledger"
	"recipewatch/internal/store"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and migrate the processed-submission ledger",
	}

	ledgerCmd.AddCommand(newLedgerStatusCommand(ctx))
	ledgerCmd.AddCommand(newLedgerImportCommand(ctx))

	return ledgerCmd
}

func newLedgerStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show ledger backend and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, l ledger.Ledger, _ *slog.Logger) error {
				n, err := l.Len(cmd.Context())
				if err != nil {
					return err
				}
				recipes, err := st.Count(cmd.Context())
				if err != nil {
					return err
				}
				location := st.Path()
				if fl, ok := l.(*ledger.FileLedger); ok {
					location = fl.Path()
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Backend:     %s\n", cfg.Ledger.Backend)
				fmt.Fprintf(out, "Location:    %s\n", location)
				fmt.Fprintf(out, "Submissions: %d\n", n)
				fmt.Fprintf(out, "Recipes:     %d\n", recipes)
				return nil
			})
		},
	}
}

func newLedgerImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Copy ids from a one-id-per-line ledger file into the configured ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, _ *store.Store, l ledger.Ledger, _ *slog.Logger) error {
				source, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				if _, err := os.Stat(source); err != nil {
					return fmt.Errorf("ledger file: %w", err)
				}
				added, err := ledger.Import(cmd.Context(), source, l)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new submission id(s) from %s\n", added, source)
				return nil
			})
		},
	}
}
