package feed

import (
	"context"
	"strings"

	"recipewatch/internal/services"
)

// Kind tags a Post as a submission or a comment.
type Kind int

const (
	KindSubmission Kind = iota + 1
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindSubmission:
		return "submission"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Post is one submission or comment. Title is empty for comments; ParentID
// is the owning submission id for comments and empty for submissions.
type Post struct {
	Kind      Kind
	ID        string
	Author    string
	Score     int64
	Created   int64 // unix seconds
	Permalink string
	Title     string
	Body      string
	ParentID  string
}

// Feed lists and expands posts.
type Feed interface {
	// ListHot returns every submission in the hot listing.
	ListHot(ctx context.Context) ([]Post, error)
	// ExpandComments returns every comment of submission, fully expanded,
	// flattened depth-first.
	ExpandComments(ctx context.Context, submission Post) ([]Post, error)
	// GetSubmission fetches one submission by id.
	GetSubmission(ctx context.Context, id string) (Post, error)
}

// IsSubmission reports whether p is a submission.
func (p Post) IsSubmission() bool { return p.Kind == KindSubmission }

// IsComment reports whether p is a comment.
func (p Post) IsComment() bool { return p.Kind == KindComment }

// AuthorName returns the author's username. Deleted accounts yield
// services.ErrFieldUnavailable.
func (p Post) AuthorName() (string, error) {
	name := strings.TrimSpace(p.Author)
	if name == "" || name == "[deleted]" {
		return "", services.Wrap(services.ErrFieldUnavailable, "feed", "author", p.Kind.String()+" "+p.ID+" has no author", nil)
	}
	return name, nil
}

// Text returns the selftext of a submission or the body of a comment.
// Removed or deleted bodies yield services.ErrFieldUnavailable.
func (p Post) Text() (string, error) {
	switch strings.TrimSpace(p.Body) {
	case "[removed]", "[deleted]":
		return "", services.Wrap(services.ErrFieldUnavailable, "feed", "body", p.Kind.String()+" "+p.ID+" was removed", nil)
	}
	return p.Body, nil
}

// URL returns the link stored with a recipe. Submissions use their own
// permalink; comments use the parent submission permalink followed by the
// comment id.
func URL(submission, post Post) string {
	if post.IsComment() {
		return submission.Permalink + post.ID
	}
	return post.Permalink
}

// ThreadText concatenates the submission title and selftext with every
// comment body, one per line. Removed bodies contribute nothing.
func ThreadText(submission Post, comments []Post) string {
	var b strings.Builder
	b.WriteString(submission.Title)
	b.WriteByte('\n')
	if text, err := submission.Text(); err == nil {
		b.WriteString(text)
	}
	b.WriteByte('\n')
	for _, c := range comments {
		if text, err := c.Text(); err == nil {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
