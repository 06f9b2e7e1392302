package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"recipewatch/internal/analyzer"
	"recipewatch/internal/config"
	"recipewatch/internal/feed"
	"recipewatch/internal/feed/reddit"
	"recipewatch/internal/ledger"
	"recipewatch/internal/poller"
	"recipewatch/internal/queue"
	"recipewatch/internal/recipe"
	"recipewatch/internal/services"
	"recipewatch/internal/store"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "check <submission-id>",
		Short: "Run the recipe pipeline over one submission and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, l ledger.Ledger, logger *slog.Logger) error {
				pipeline, err := analyzer.PipelineFromConfig(cfg)
				if err != nil {
					return err
				}
				client := reddit.NewFromConfig(cfg, logger)
				found, err := checkSubmission(cmd, client, pipeline, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(found) == 0 {
					fmt.Fprintln(out, "No recipes found")
					return nil
				}
				for _, r := range found {
					printCheckedRecipe(out, r)
				}
				if !save {
					return nil
				}
				q := queue.New(st, logger)
				for _, r := range found {
					if err := q.Add(cmd.Context(), r); err != nil {
						return err
					}
				}
				stats := q.Stats()
				fmt.Fprintf(out, "Saved %d new recipe(s), %d already stored\n", stats.Stored, stats.Duplicates)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Store detected recipes (the ledger is not updated)")
	return cmd
}

func checkSubmission(cmd *cobra.Command, f feed.Feed, pipeline *analyzer.Pipeline, id string) ([]recipe.Recipe, error) {
	sub, err := f.GetSubmission(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("fetch submission %s: %w", id, err)
	}
	comments, err := f.ExpandComments(cmd.Context(), sub)
	if err != nil {
		return nil, fmt.Errorf("expand comments %s: %w", id, err)
	}
	thread := feed.ThreadText(sub, comments)

	var found []recipe.Recipe
	for _, post := range append([]feed.Post{sub}, comments...) {
		r, ok, err := poller.Extract(pipeline, sub, post, thread)
		if errors.Is(err, services.ErrFieldUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, r)
		}
	}
	return found, nil
}

func printCheckedRecipe(out io.Writer, r recipe.Recipe) {
	fmt.Fprintf(out, "[%s] %s by /u/%s (%s, score %d)\n", r.ID, r.Title, r.Author, r.Type, r.Score)
	fmt.Fprintln(out, r.URL)
	fmt.Fprint(out, r.Simple())
	fmt.Fprintln(out)
}
