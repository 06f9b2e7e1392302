package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"recipewatch/internal/config"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
)

// Publisher uploads a digest file with a display title and description.
type Publisher interface {
	Upload(ctx context.Context, path, title, description string) error
}

// FromConfig builds the publisher selected by cfg.Publisher.Kind.
func FromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Publisher, error) {
	switch cfg.Publisher.Kind {
	case config.PublisherDrive:
		return NewDrive(ctx, cfg.Publisher.Drive, logger)
	case config.PublisherNtfy:
		return NewNtfy(cfg.Publisher.Ntfy, logger), nil
	case config.PublisherDirectory:
		return NewDirectory(cfg.Publisher.Directory.Path, logger), nil
	case config.PublisherNone, "":
		return NewNone(logger), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "publisher", "select",
			fmt.Sprintf("unknown publisher kind %q", cfg.Publisher.Kind), nil)
	}
}

// None logs the digest and discards it.
type None struct {
	logger *slog.Logger
}

// NewNone returns a publisher that only logs.
func NewNone(logger *slog.Logger) *None {
	return &None{logger: logging.NewComponentLogger(logger, "publisher")}
}

func (n *None) Upload(_ context.Context, path, title, description string) error {
	n.logger.Info("digest not published",
		logging.String("path", path),
		logging.String("title", title),
		logging.String("description", description),
		logging.EventType("digest_unpublished"),
	)
	return nil
}
