package translations

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/logger"
	"github.com/dmitrymomot/localekit/pkg/stablejson"
	"github.com/dmitrymomot/localekit/pkg/storage"
)

// Locker serializes writes per key. *redis.Locker satisfies it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(context.Context) error, error)
}

// SyncEnqueuer schedules a push of a project to its sync target.
type SyncEnqueuer interface {
	EnqueueSync(ctx context.Context, projectID uuid.UUID, req SyncRequest) error
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithLocker enables per-project write locks.
func WithLocker(l Locker) Option {
	return func(s *Service) { s.locker = l }
}

// WithExportStorage enables PublishExport.
func WithExportStorage(st storage.Storage, linkTTL time.Duration) Option {
	return func(s *Service) {
		s.exports = st
		s.linkTTL = linkTTL
	}
}

// WithSyncEnqueuer enables RequestSync.
func WithSyncEnqueuer(e SyncEnqueuer) Option {
	return func(s *Service) { s.sync = e }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithImportPolicy sets how non-string JSON leaves are handled. Default: Strict.
func WithImportPolicy(p flatmap.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithIndent sets the JSON indent of exported files. Default: 2.
func WithIndent(n int) Option {
	return func(s *Service) { s.indent = n }
}

// WithArchiveLimits caps uncompressed file size and member count of imported archives.
func WithArchiveLimits(maxFileSize int64, maxFiles int) Option {
	return func(s *Service) {
		s.maxFileSize = maxFileSize
		s.maxFiles = maxFiles
	}
}

func defaults(s *Service) {
	s.log = logger.NewNope()
	s.now = time.Now
	s.policy = flatmap.Strict
	s.indent = stablejson.DefaultIndent
	s.maxFileSize = archive.DefaultMaxFileSize
	s.maxFiles = archive.DefaultMaxFiles
	s.linkTTL = storage.DefaultURLExpiry
}
