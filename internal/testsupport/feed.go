package testsupport

import (
	"context"
	"sync"

	"recipewatch/internal/feed"
	"recipewatch/internal/services"
)

// FakeFeed is an in-memory feed.Feed. Errors set on ListErr or
// CommentErrs are returned from the matching calls.
type FakeFeed struct {
	mu          sync.Mutex
	Submissions []feed.Post
	Comments    map[string][]feed.Post
	ListErr     error
	CommentErrs map[string]error
	ListCalls   int
	Expanded    []string
}

var _ feed.Feed = (*FakeFeed)(nil)

// NewFakeFeed returns a feed listing the given submissions.
func NewFakeFeed(submissions ...feed.Post) *FakeFeed {
	return &FakeFeed{
		Submissions: submissions,
		Comments:    make(map[string][]feed.Post),
		CommentErrs: make(map[string]error),
	}
}

// AddComments attaches comments to submission id.
func (f *FakeFeed) AddComments(id string, comments ...feed.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range comments {
		comments[i].Kind = feed.KindComment
		comments[i].ParentID = id
	}
	f.Comments[id] = append(f.Comments[id], comments...)
}

func (f *FakeFeed) ListHot(ctx context.Context) ([]feed.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]feed.Post, len(f.Submissions))
	copy(out, f.Submissions)
	return out, nil
}

func (f *FakeFeed) ExpandComments(ctx context.Context, submission feed.Post) ([]feed.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Expanded = append(f.Expanded, submission.ID)
	if err := f.CommentErrs[submission.ID]; err != nil {
		return nil, err
	}
	return append([]feed.Post(nil), f.Comments[submission.ID]...), nil
}

func (f *FakeFeed) GetSubmission(ctx context.Context, id string) (feed.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.Submissions {
		if p.ID == id {
			return p, nil
		}
	}
	return feed.Post{}, services.Wrap(services.ErrNotFound, "fakefeed", "get submission", id, nil)
}

// Submission builds a submission post.
func Submission(id, author, title, body string, score, created int64) feed.Post {
	return feed.Post{
		Kind:      feed.KindSubmission,
		ID:        id,
		Author:    author,
		Score:     score,
		Created:   created,
		Permalink: "https://www.reddit.com/r/recipes/comments/" + id + "/",
		Title:     title,
		Body:      body,
	}
}

// Comment builds a comment post.
func Comment(id, author, body string, score, created int64) feed.Post {
	return feed.Post{
		Kind:    feed.KindComment,
		ID:      id,
		Author:  author,
		Score:   score,
		Created: created,
		Body:    body,
	}
}
