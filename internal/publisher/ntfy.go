package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"recipewatch/internal/config"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
	"recipewatch/internal/textutil"
)

const userAgent = "recipewatch/1.0"

// Ntfy sends the digest file to an ntfy topic as an attachment.
type Ntfy struct {
	client *resty.Client
	topic  string
	logger *slog.Logger
}

// NewNtfy builds an ntfy publisher from cfg.
func NewNtfy(cfg config.Ntfy, logger *slog.Logger) *Ntfy {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)
	return &Ntfy{
		client: client,
		topic:  strings.Trim(strings.TrimSpace(cfg.Topic), "/"),
		logger: logging.NewComponentLogger(logger, "publisher"),
	}
}

func (n *Ntfy) Upload(ctx context.Context, path, title, description string) error {
	if n.topic == "" {
		return services.Wrap(services.ErrConfiguration, "publisher", "ntfy", "topic not configured", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Wrap(services.ErrPublish, "publisher", "ntfy", "read digest", err)
	}

	filename := textutil.SanitizeFileName(title) + filepath.Ext(path)
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Title", title).
		SetHeader("Message", description).
		SetHeader("Filename", filename).
		SetHeader("Tags", "recipewatch,digest").
		SetBody(data).
		Put("/" + n.topic)
	if err != nil {
		return services.Wrap(services.ErrPublish, "publisher", "ntfy", "send digest", err)
	}
	if resp.StatusCode() >= 300 {
		body := strings.TrimSpace(resp.String())
		if len(body) > 2048 {
			body = body[:2048]
		}
		return services.Wrap(services.ErrPublish, "publisher", "ntfy",
			fmt.Sprintf("ntfy returned %d: %s", resp.StatusCode(), body), nil)
	}
	n.logger.Info("digest sent to ntfy",
		logging.String("topic", n.topic),
		logging.String("title", title),
		logging.Int("bytes", len(data)),
		logging.EventType("digest_published"),
	)
	return nil
}
