package reddit

import (
	"bytes"
	"encoding/json"
	"strings"

	"recipewatch/internal/feed"
)

const (
	kindComment = "t1"
	kindLink    = "t3"
	kindMore    = "more"
)

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

type linkData struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Score      int64   `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
}

type commentData struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Score      int64           `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Permalink  string          `json:"permalink"`
	Body       string          `json:"body"`
	LinkID     string          `json:"link_id"`
	Replies    json.RawMessage `json:"replies"`
}

type moreData struct {
	Count    int      `json:"count"`
	Children []string `json:"children"`
}

type moreChildrenResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

func (d linkData) post() feed.Post {
	return feed.Post{
		Kind:      feed.KindSubmission,
		ID:        d.ID,
		Author:    d.Author,
		Score:     d.Score,
		Created:   int64(d.CreatedUTC),
		Permalink: absolutePermalink(d.Permalink),
		Title:     d.Title,
		Body:      d.Selftext,
	}
}

func (d commentData) post() feed.Post {
	return feed.Post{
		Kind:      feed.KindComment,
		ID:        d.ID,
		Author:    d.Author,
		Score:     d.Score,
		Created:   int64(d.CreatedUTC),
		Permalink: absolutePermalink(d.Permalink),
		Body:      d.Body,
		ParentID:  strings.TrimPrefix(d.LinkID, kindLink+"_"),
	}
}

// repliesListing decodes the replies field, which is either "" or a Listing.
func (d commentData) repliesListing() (*listing, error) {
	raw := bytes.TrimSpace(d.Replies)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func absolutePermalink(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return permalinkHost + p
}
