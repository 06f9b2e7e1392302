package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipewatch/internal/daemon"
	"recipewatch/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check directories, catalog, publisher settings and feed access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			running, err := daemon.Running(cfg)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Daemon", statusError, err.Error(), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Daemon", statusInfo, "running: "+yesNo(running), colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}
			return nil
		},
	}
}
