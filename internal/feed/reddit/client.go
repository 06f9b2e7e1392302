package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"recipewatch/internal/config"
	"recipewatch/internal/feed"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
)

// permalinkHost prefixes the relative permalinks returned by the API.
const permalinkHost = "https://www.reddit.com"

// Options configures a Client.
type Options struct {
	BaseURL         string
	Subreddit       string
	UserAgent       string
	Timeout         time.Duration
	PageSize        int
	RequestInterval time.Duration
	MaxRetries      int
	RetryWait       time.Duration
	Logger          *slog.Logger
}

// Client talks to the Reddit JSON API.
type Client struct {
	http      *resty.Client
	subreddit string
	pageSize  int
	interval  time.Duration
	logger    *slog.Logger

	mu   sync.Mutex
	last time.Time
}

var _ feed.Feed = (*Client)(nil)

// New constructs a client from opts.
func New(opts Options) *Client {
	logger := logging.NewComponentLogger(opts.Logger, "reddit")
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	retryWait := opts.RetryWait
	if retryWait <= 0 {
		retryWait = 2 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: logger}).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(8 * retryWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return retryableStatus(resp.StatusCode())
		})
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	return &Client{
		http:      httpClient,
		subreddit: opts.Subreddit,
		pageSize:  pageSize,
		interval:  opts.RequestInterval,
		logger:    logger,
	}
}

// NewFromConfig constructs a client from the feed section of cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	return New(Options{
		BaseURL:         cfg.Feed.BaseURL,
		Subreddit:       cfg.Feed.Subreddit,
		UserAgent:       cfg.Feed.UserAgent,
		Timeout:         time.Duration(cfg.Feed.RequestTimeout) * time.Second,
		PageSize:        cfg.Feed.PageSize,
		RequestInterval: cfg.FeedRequestInterval(),
		MaxRetries:      cfg.Feed.MaxRetries,
		Logger:          logger,
	})
}

// get performs a throttled GET and returns the body of a 2xx response. A
// 404 or 410 maps to ErrNotFound, 401 and 403 map to ErrForbidden, and every
// other non-2xx status is transient.
func (c *Client) get(ctx context.Context, operation, path string, query map[string]string) ([]byte, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, services.Wrap(services.ErrTransient, "reddit", operation, "request failed", err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return resp.Body(), nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return nil, services.Wrap(services.ErrNotFound, "reddit", operation, path, nil)
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return nil, services.Wrap(services.ErrForbidden, "reddit", operation,
			fmt.Sprintf("status %d: %s", status, path), nil)
	default:
		return nil, services.Wrap(services.ErrTransient, "reddit", operation,
			fmt.Sprintf("status %d: %s", status, truncate(resp.String(), 200)), nil)
	}
}

func (c *Client) throttle(ctx context.Context) error {
	if c.interval <= 0 {
		return nil
	}
	c.mu.Lock()
	wait := time.Until(c.last.Add(c.interval))
	if wait < 0 {
		wait = 0
	}
	c.last = time.Now().Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// restyLogger routes resty's retry and warning output into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), logging.EventType("reddit_http_error"))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), logging.EventType("reddit_http_warning"))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
