package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"recipewatch/internal/config"
	"recipewatch/internal/logging"
	"recipewatch/internal/services"
)

const googleDocMimeType = "application/vnd.google-apps.document"

// Drive uploads digests to Google Drive, converting them to Google Docs.
type Drive struct {
	files    *drive.FilesService
	folderID string
	logger   *slog.Logger
}

// NewDrive authenticates with the service-account credentials in cfg. Extra
// client options replace the credentials lookup when given.
func NewDrive(ctx context.Context, cfg config.Drive, logger *slog.Logger, opts ...option.ClientOption) (*Drive, error) {
	if len(opts) == 0 {
		if strings.TrimSpace(cfg.CredentialsFile) == "" {
			return nil, services.Wrap(services.ErrConfiguration, "publisher", "drive", "credentials_file not configured", nil)
		}
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(drive.DriveFileScope),
		}
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "publisher", "drive", "create drive client", err)
	}
	return &Drive{
		files:    svc.Files,
		folderID: strings.TrimSpace(cfg.FolderID),
		logger:   logging.NewComponentLogger(logger, "publisher"),
	}, nil
}

func (d *Drive) Upload(ctx context.Context, path, title, description string) error {
	f, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrPublish, "publisher", "drive", "open digest", err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:        title,
		Description: description,
		MimeType:    googleDocMimeType,
	}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}
	created, err := d.files.Create(meta).
		Media(f, googleapi.ContentType("text/plain")).
		Fields("id", "name").
		Context(ctx).
		Do()
	if err != nil {
		return services.Wrap(services.ErrPublish, "publisher", "drive", fmt.Sprintf("upload %q", title), err)
	}
	d.logger.Info("digest uploaded to drive",
		logging.String("file_id", created.Id),
		logging.String("title", title),
		logging.EventType("digest_published"),
	)
	return nil
}
