package poller_test

import (
	"errors"
	"testing"

	"recipewatch/internal/analyzer"
	"recipewatch/internal/feed"
	"recipewatch/internal/poller"
	"recipewatch/internal/services"
	"recipewatch/internal/testsupport"
)

func TestExtract(t *testing.T) {
	pipeline := analyzer.NewPipeline(analyzer.DefaultTerms(), analyzer.DefaultCatalog())
	old := now.Unix()
	sub := testsupport.Submission("s1", "chef", "My Chili", recipeBody, 42, old)
	comment := testsupport.Comment("c1", "cook", recipeBody, 7, old)
	thread := feed.ThreadText(sub, []feed.Post{comment})

	r, ok, err := poller.Extract(pipeline, sub, comment, thread)
	if err != nil || !ok {
		t.Fatalf("expected recipe, ok=%v err=%v", ok, err)
	}
	if r.Author != "cook" || r.Score != 7 || r.URL != sub.Permalink+"c1" {
		t.Fatalf("unexpected post info %+v", r.PostInfo)
	}

	chatter := testsupport.Comment("c2", "fan", "looks tasty", 1, old)
	if _, ok, err := poller.Extract(pipeline, sub, chatter, thread); ok || err != nil {
		t.Fatalf("expected no recipe, ok=%v err=%v", ok, err)
	}

	for _, gone := range []feed.Post{
		testsupport.Comment("c3", "[deleted]", recipeBody, 1, old),
		testsupport.Comment("c4", "mod", "[removed]", 1, old),
	} {
		if _, ok, err := poller.Extract(pipeline, sub, gone, thread); ok || !errors.Is(err, services.ErrFieldUnavailable) {
			t.Fatalf("expected unavailable field for %s, ok=%v err=%v", gone.ID, ok, err)
		}
	}
}
