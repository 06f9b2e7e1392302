package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipewatch/internal/logging"
	"recipewatch/internal/recipe"
)

// Insert stores r unless a recipe with the same id exists. It returns true
// when a row was written. A duplicate leaves the existing row untouched and
// is logged, not returned as an error.
func (s *Store) Insert(ctx context.Context, r recipe.Recipe) (bool, error) {
	if r.ID == "" {
		return false, errors.New("insert recipe: empty post id")
	}
	res, err := s.execWithRetry(ctx,
		`INSERT INTO recipes (`+recipeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(post_id) DO NOTHING`,
		r.ID,
		r.Author,
		r.Score,
		r.URL,
		r.Title,
		joinList(r.Ingredients),
		joinList(r.Instructions),
		string(r.Type),
		r.Created,
	)
	if err != nil {
		return false, fmt.Errorf("insert recipe %s: %w", r.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert recipe %s: rows affected: %w", r.ID, err)
	}
	if affected == 0 {
		s.logger.Info("recipe already recorded",
			logging.PostID(r.ID),
			logging.EventType("recipe_duplicate"),
		)
		return false, nil
	}
	return true, nil
}

// Get returns the recipe with id. The boolean is false when no row exists.
func (s *Store) Get(ctx context.Context, id string) (recipe.Recipe, bool, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+recipeColumns+" FROM recipes WHERE post_id = ?", id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe.Recipe{}, false, nil
	}
	if err != nil {
		return recipe.Recipe{}, false, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return r, true, nil
}

// TimeWindow returns recipes created in [start, end), in insertion order.
func (s *Store) TimeWindow(ctx context.Context, start, end time.Time) ([]recipe.Recipe, error) {
	return s.query(ctx, "time window",
		"SELECT "+recipeColumns+" FROM recipes WHERE time >= ? AND time < ? ORDER BY rowid",
		start.Unix(), end.Unix())
}

// ByAuthor returns recipes whose author equals name exactly, in insertion order.
func (s *Store) ByAuthor(ctx context.Context, name string) ([]recipe.Recipe, error) {
	return s.query(ctx, "by author",
		"SELECT "+recipeColumns+" FROM recipes WHERE author = ? ORDER BY rowid", name)
}

// Count returns the number of stored recipes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM recipes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, operation, query string, args ...any) ([]recipe.Recipe, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes %s: %w", operation, err)
	}
	defer rows.Close()

	var out []recipe.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable recipe row", "recipe_row_malformed",
				logging.String("operation", operation),
				logging.Error(err),
				logging.Hint("inspect the recipes table for hand-edited values"),
				logging.Impact("recipe omitted from results"),
			)
			continue
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes %s: %w", operation, err)
	}
	return out, nil
}
