package poller

import (
	"recipewatch/internal/analyzer"
	"recipewatch/internal/feed"
	"recipewatch/internal/recipe"
)

// Extract runs pipeline over one post from sub's thread. ok is false when
// the post holds no recipe. The error wraps services.ErrFieldUnavailable
// when the author or body can no longer be read.
func Extract(pipeline *analyzer.Pipeline, sub, post feed.Post, thread string) (r recipe.Recipe, ok bool, err error) {
	author, err := post.AuthorName()
	if err != nil {
		return recipe.Recipe{}, false, err
	}
	body, err := post.Text()
	if err != nil {
		return recipe.Recipe{}, false, err
	}
	refined, ok := pipeline.Analyze(analyzer.Input{
		Title:      post.Title,
		Body:       body,
		ThreadText: thread,
	})
	if !ok {
		return recipe.Recipe{}, false, nil
	}
	return recipe.New(recipe.PostInfo{
		Author:  author,
		Score:   post.Score,
		Created: post.Created,
		ID:      post.ID,
		URL:     feed.URL(sub, post),
	}, refined), true, nil
}
