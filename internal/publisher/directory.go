package publisher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"recipewatch/internal/fileutil"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
	"recipewatch/internal/textutil"
)

// Directory copies digests into an outbox directory named after their title.
type Directory struct {
	dir    string
	logger *slog.Logger
}

// NewDirectory returns a publisher writing into dir.
func NewDirectory(dir string, logger *slog.Logger) *Directory {
	return &Directory{dir: dir, logger: logging.NewComponentLogger(logger, "publisher")}
}

// Target returns the outbox path used for title.
func (d *Directory) Target(title string) string {
	return filepath.Join(d.dir, textutil.SanitizeFileName(title)+".txt")
}

func (d *Directory) Upload(ctx context.Context, path, title, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return services.Wrap(services.ErrPublish, "publisher", "directory", "create outbox", err)
	}
	target := d.Target(title)
	if err := fileutil.CopyFileVerified(path, target); err != nil {
		return services.Wrap(services.ErrPublish, "publisher", "directory", "copy digest", err)
	}
	d.logger.Info("digest written to outbox",
		logging.String("path", target),
		logging.String("description", description),
		logging.EventType("digest_published"),
	)
	return nil
}
