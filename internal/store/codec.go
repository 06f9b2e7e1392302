package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipewatch/internal/recipe"
)

const listSeparator = ";"

const recipeColumns = "post_id, author, karma, url, title, ingredients, instructions, type, time"

// joinList encodes a list as ";"-joined text. A ";" inside an entry becomes
// "," so decoding returns the same number of entries.
func joinList(lines []string) string {
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		cleaned[i] = strings.ReplaceAll(line, listSeparator, ",")
	}
	return strings.Join(cleaned, listSeparator)
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, listSeparator)
}

var errMalformedRow = errors.New("malformed recipe row")

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (recipe.Recipe, error) {
	var (
		postID       sql.NullString
		author       sql.NullString
		karma        sql.NullInt64
		url          sql.NullString
		title        sql.NullString
		ingredients  sql.NullString
		instructions sql.NullString
		mealType     sql.NullString
		created      sql.NullInt64
	)
	if err := scanner.Scan(
		&postID,
		&author,
		&karma,
		&url,
		&title,
		&ingredients,
		&instructions,
		&mealType,
		&created,
	); err != nil {
		return recipe.Recipe{}, fmt.Errorf("%w: %w", errMalformedRow, err)
	}

	if !postID.Valid || postID.String == "" {
		return recipe.Recipe{}, fmt.Errorf("%w: missing post_id", errMalformedRow)
	}
	if !karma.Valid || !created.Valid {
		return recipe.Recipe{}, fmt.Errorf("%w: post %s missing karma or time", errMalformedRow, postID.String)
	}
	meal, ok := recipe.ParseMealType(mealType.String)
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("%w: post %s has unknown type %q", errMalformedRow, postID.String, mealType.String)
	}

	return recipe.New(
		recipe.PostInfo{
			Author:  author.String,
			Score:   karma.Int64,
			Created: created.Int64,
			ID:      postID.String,
			URL:     url.String,
		},
		recipe.RefinedPost{
			Title:        title.String,
			Ingredients:  splitList(ingredients.String),
			Instructions: splitList(instructions.String),
			Type:         meal,
		},
	), nil
}
