package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"recipewatch/internal/config"
	"recipewatch/internal/digest"
	"recipewatch/internal/ledger"
	"recipewatch/internal/publisher"
	"recipewatch/internal/store"
)

func newDigestCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Build and publish the weekly digest now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, _ ledger.Ledger, logger *slog.Logger) error {
				res, err := runDigest(cmd.Context(), cfg, st, logger, dryRun)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Digest:      %s\n", res.Label)
				fmt.Fprintf(out, "Description: %s\n", res.Description)
				fmt.Fprintf(out, "Recipes:     %d\n", res.Count)
				fmt.Fprintf(out, "File:        %s\n", res.Path)
				if !dryRun {
					fmt.Fprintf(out, "Published:   %s\n", yesNo(res.Published))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write the digest file without publishing it")
	return cmd
}

func runDigest(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger, dryRun bool) (digest.Result, error) {
	if dryRun {
		return digest.NewBuilder(st, nil, cfg.Paths.StagingDir, logger).Build(ctx)
	}
	pub, err := publisher.FromConfig(ctx, cfg, logger)
	if err != nil {
		return digest.Result{}, err
	}
	return digest.NewBuilder(st, pub, cfg.Paths.StagingDir, logger,
		digest.WithSkipEmpty(!cfg.Digest.PublishEmpty)).Run(ctx)
}
