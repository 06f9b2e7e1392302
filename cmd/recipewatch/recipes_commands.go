package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"recipewatch/internal/config"
	"recipewatch/internal/digest"
	"recipewatch/internal/ledger"
	"recipewatch/internal/recipe"
	"recipewatch/internal/services"
	"recipewatch/internal/store"
)

func newRecipesCommand(ctx *commandContext) *cobra.Command {
	recipesCmd := &cobra.Command{
		Use:   "recipes",
		Short: "Inspect stored recipes",
	}

	recipesCmd.AddCommand(newRecipesWeekCommand(ctx))
	recipesCmd.AddCommand(newRecipesAuthorCommand(ctx))
	recipesCmd.AddCommand(newRecipesShowCommand(ctx))

	return recipesCmd
}

func newRecipesWeekCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "List the recipes the next digest would contain, ranked by score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store, _ ledger.Ledger, _ *slog.Logger) error {
				window := digest.WindowFor(time.Now())
				recipes, err := st.TimeWindow(cmd.Context(), window.Start, window.End)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Week %s\n", window.Label())
				printRecipeTable(out, digest.Rank(recipes))
				return nil
			})
		},
	}
}

func newRecipesAuthorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "author <name>",
		Short: "List recipes posted by one author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store, _ ledger.Ledger, _ *slog.Logger) error {
				recipes, err := st.ByAuthor(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRecipeTable(cmd.OutOrStdout(), recipes)
				return nil
			})
		},
	}
}

func newRecipesShowCommand(ctx *commandContext) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "show <post-id>",
		Short: "Print one stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store, _ ledger.Ledger, _ *slog.Logger) error {
				r, ok, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return services.Wrap(services.ErrNotFound, "recipes", "show", "no recipe with id "+args[0], nil)
				}
				out := cmd.OutOrStdout()
				if full {
					fmt.Fprintln(out, r.String())
					return nil
				}
				fmt.Fprint(out, r.Simple())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Use the digest layout with author and link")
	return cmd
}

func printRecipeTable(out io.Writer, recipes []recipe.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(out, "No recipes found")
		return
	}
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{
			r.ID,
			strconv.FormatInt(r.Score, 10),
			r.Title,
			r.Author,
			string(r.Type),
			time.Unix(r.Created, 0).UTC().Format("2006-01-02"),
		})
	}
	fmt.Fprintln(out, renderTable(out, []column{
		{header: "ID"},
		{header: "Score", align: text.AlignRight},
		{header: "Title", maxWidth: 40},
		{header: "Author"},
		{header: "Meal"},
		{header: "Posted"},
	}, rows))
