package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"recipewatch/internal/feed"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
)

// maxHotPages bounds pagination in case the API keeps returning a cursor.
const maxHotPages = 50

// ListHot returns the subreddit's hot listing, following pagination until
// the cursor runs out.
func (c *Client) ListHot(ctx context.Context) ([]feed.Post, error) {
	path := fmt.Sprintf("/r/%s/hot.json", c.subreddit)
	var posts []feed.Post
	after := ""
	seen := make(map[string]struct{})

	for page := 0; page < maxHotPages; page++ {
		query := map[string]string{
			"limit":    strconv.Itoa(c.pageSize),
			"raw_json": "1",
		}
		if after != "" {
			query["after"] = after
		}
		body, err := c.get(ctx, "list hot", path, query)
		if err != nil {
			// A private or banned subreddit may come back later.
			if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrForbidden) {
				return nil, services.Wrap(services.ErrTransient, "reddit", "list hot", "subreddit unavailable", err)
			}
			return nil, err
		}
		var l listing
		if err := json.Unmarshal(body, &l); err != nil {
			return nil, services.Wrap(services.ErrTransient, "reddit", "list hot", "decode listing", err)
		}
		for _, child := range l.Data.Children {
			if child.Kind != kindLink {
				continue
			}
			var d linkData
			if err := json.Unmarshal(child.Data, &d); err != nil {
				c.logger.Warn("skipping undecodable submission",
					logging.EventType("reddit_decode_skipped"),
					logging.Error(err))
				continue
			}
			if _, dup := seen[d.ID]; dup || d.ID == "" {
				continue
			}
			seen[d.ID] = struct{}{}
			posts = append(posts, d.post())
		}

		next := l.Data.After
		if next == "" || next == after || len(l.Data.Children) == 0 {
			break
		}
		after = next
	}

	c.logger.Debug("hot listing fetched",
		logging.String("subreddit", c.subreddit),
		logging.Int("submissions", len(posts)))
	return posts, nil
}

// GetSubmission fetches one submission by id.
func (c *Client) GetSubmission(ctx context.Context, id string) (feed.Post, error) {
	body, err := c.get(ctx, "get submission", fmt.Sprintf("/by_id/%s_%s.json", kindLink, id), map[string]string{"raw_json": "1"})
	if err != nil {
		return feed.Post{}, err
	}
	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return feed.Post{}, services.Wrap(services.ErrTransient, "reddit", "get submission", "decode listing", err)
	}
	for _, child := range l.Data.Children {
		if child.Kind != kindLink {
			continue
		}
		var d linkData
		if err := json.Unmarshal(child.Data, &d); err != nil {
			return feed.Post{}, services.Wrap(services.ErrTransient, "reddit", "get submission", "decode submission", err)
		}
		return d.post(), nil
	}
	return feed.Post{}, services.Wrap(services.ErrNotFound, "reddit", "get submission", id, nil)
}
