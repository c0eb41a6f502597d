package translations

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/logger"
	"github.com/dmitrymomot/localekit/pkg/storage"
)

// ExportArchive renders the project as a zip archive.
func (s *Service) ExportArchive(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	b, err := s.bundle(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return archive.Export(b, archive.WithIndent(s.indent))
}

// ExportFiles renders the project as a path to content map under root,
// the form pushed to a repository.
func (s *Service) ExportFiles(ctx context.Context, projectID uuid.UUID, root string) (map[string]string, error) {
	b, err := s.bundle(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return archive.Files(b, root, s.indent)
}

func (s *Service) bundle(ctx context.Context, projectID uuid.UUID) (entry.Bundle, error) {
	entries, err := s.entries.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return entry.Group(entries), nil
}

// PublishedExport is an archive stored in object storage.
type PublishedExport struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
}

// PublishExport uploads the project archive and returns a time-limited
// download link.
func (s *Service) PublishExport(ctx context.Context, projectID uuid.UUID) (*PublishedExport, error) {
	if s.exports == nil {
		return nil, ErrStorageNotConfigured
	}
	ctx = projectContext(ctx, projectID)

	data, err := s.ExportArchive(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := storage.Key("exports", projectID.String(), uuid.Must(uuid.NewV7()).String()+".zip")
	obj, err := s.exports.Put(ctx, key, data, storage.ContentTypeZip)
	if err != nil {
		s.log.ErrorContext(ctx, "upload export", slog.String("key", key), logger.Error(err))
		return nil, err
	}

	url, err := s.exports.URL(ctx, obj.Key,
		storage.WithExpiry(s.linkTTL),
		storage.WithDownload("translations-"+now.UTC().Format("20060102-150405")+".zip"),
	)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "export published", slog.String("key", obj.Key), slog.Int64("size", obj.Size))
	return &PublishedExport{
		Key:       obj.Key,
		URL:       url,
		Size:      obj.Size,
		ExpiresAt: now.Add(s.linkTTL),
	}, nil
}
