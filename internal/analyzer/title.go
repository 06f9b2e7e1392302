package analyzer

import "recipewatch/internal/textutil"

// TitleClassifier picks the catalog title that best matches a post.
type TitleClassifier struct {
	catalog Catalog
}

// NewTitleClassifier returns a classifier over catalog.
func NewTitleClassifier(catalog Catalog) TitleClassifier {
	return TitleClassifier{catalog: catalog}
}

// Scores returns a fresh title to score map for the post, where the score is
// the token-set ratio between each title and postTitle + " " + body.
func (c TitleClassifier) Scores(postTitle, body string) map[string]int {
	text := postTitle + " " + body
	scores := make(map[string]int, len(c.catalog.titles))
	for _, title := range c.catalog.titles {
		scores[title] = textutil.TokenSetRatio(title, text)
	}
	return scores
}

// Classify returns the highest scoring title. Ties go to the title that comes
// first in the catalog. An empty catalog yields "".
func (c TitleClassifier) Classify(postTitle, body string) string {
	scores := c.Scores(postTitle, body)
	best := ""
	bestScore := -1
	for _, title := range c.catalog.titles {
		if score := scores[title]; score > bestScore {
			best, bestScore = title, score
		}
	}
	return best
}
