package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipewatch/internal/feed"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
)

const (
	moreChildrenBatch = 100
	maxMoreRounds     = 200
)

// ExpandComments returns every comment under submission, flattened in
// depth-first order with "more" stubs resolved and appended after the
// initially loaded tree.
func (c *Client) ExpandComments(ctx context.Context, submission feed.Post) ([]feed.Post, error) {
	body, err := c.get(ctx, "load comments", fmt.Sprintf("/comments/%s.json", submission.ID), map[string]string{
		"limit":    "500",
		"raw_json": "1",
	})
	if err != nil {
		return nil, err
	}
	var listings []listing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, services.Wrap(services.ErrTransient, "reddit", "load comments", "decode thread", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	w := &treeWalker{seen: make(map[string]struct{})}
	w.walk(listings[1].Data.Children)

	for round := 0; len(w.pending) > 0 && round < maxMoreRounds; round++ {
		n := min(moreChildrenBatch, len(w.pending))
		batch := w.pending[:n]
		w.pending = w.pending[n:]
		things, err := c.moreChildren(ctx, submission.ID, batch)
		if err != nil {
			return nil, err
		}
		w.walk(things)
	}
	if len(w.pending) > 0 {
		c.logger.Warn("comment expansion truncated",
			logging.EventType("reddit_comments_truncated"),
			logging.String(logging.FieldSubmissionID, submission.ID),
			logging.Int("unresolved", len(w.pending)))
	}
	if w.decodeErrors > 0 {
		c.logger.Warn("skipped undecodable comments",
			logging.EventType("reddit_decode_skipped"),
			logging.String(logging.FieldSubmissionID, submission.ID),
			logging.Int("count", w.decodeErrors))
	}
	return w.comments, nil
}

func (c *Client) moreChildren(ctx context.Context, submissionID string, ids []string) ([]thing, error) {
	body, err := c.get(ctx, "expand more", "/api/morechildren.json", map[string]string{
		"api_type":       "json",
		"link_id":        kindLink + "_" + submissionID,
		"children":       strings.Join(ids, ","),
		"limit_children": "false",
		"raw_json":       "1",
	})
	if err != nil {
		return nil, err
	}
	var resp moreChildrenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, services.Wrap(services.ErrTransient, "reddit", "expand more", "decode response", err)
	}
	return resp.JSON.Data.Things, nil
}

type treeWalker struct {
	comments     []feed.Post
	pending      []string
	seen         map[string]struct{}
	decodeErrors int
}

func (w *treeWalker) walk(children []thing) {
	for _, child := range children {
		switch child.Kind {
		case kindComment:
			var d commentData
			if err := json.Unmarshal(child.Data, &d); err != nil {
				w.decodeErrors++
				continue
			}
			if _, dup := w.seen[d.ID]; !dup && d.ID != "" {
				w.seen[d.ID] = struct{}{}
				w.comments = append(w.comments, d.post())
			}
			replies, err := d.repliesListing()
			if err != nil {
				w.decodeErrors++
				continue
			}
			if replies != nil {
				w.walk(replies.Data.Children)
			}
		case kindMore:
			var d moreData
			if err := json.Unmarshal(child.Data, &d); err != nil {
				w.decodeErrors++
				continue
			}
			for _, id := range d.Children {
				if id == "" || id == "_" {
					continue
				}
				if _, dup := w.seen[id]; dup {
					continue
				}
				w.pending = append(w.pending, id)
			}
		}
	}
}
