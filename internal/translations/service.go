package translations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/logger"
	"github.com/dmitrymomot/localekit/pkg/matrix"
	"github.com/dmitrymomot/localekit/pkg/redis"
	"github.com/dmitrymomot/localekit/pkg/storage"
)

// Service runs translation operations for projects.
type Service struct {
	entries     store.Entries
	targets     store.Targets
	locker      Locker
	exports     storage.Storage
	sync        SyncEnqueuer
	log         *slog.Logger
	now         func() time.Time
	policy      flatmap.Policy
	indent      int
	maxFileSize int64
	maxFiles    int
	linkTTL     time.Duration
}

// New creates a Service.
func New(entries store.Entries, targets store.Targets, opts ...Option) *Service {
	s := &Service{entries: entries, targets: targets}
	defaults(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) archiveOptions() []archive.Option {
	return []archive.Option{
		archive.WithPolicy(s.policy),
		archive.WithIndent(s.indent),
		archive.WithMaxFileSize(s.maxFileSize),
		archive.WithMaxFiles(s.maxFiles),
	}
}

// withLock runs fn while holding the project's write lock.
func (s *Service) withLock(ctx context.Context, projectID uuid.UUID, fn func(ctx context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}

	unlock, err := s.locker.Lock(ctx, "project:"+projectID.String())
	if err != nil {
		if errors.Is(err, redis.ErrLockHeld) {
			return ErrLocked
		}
		return err
	}
	defer func() {
		// Release with a fresh context so a cancelled request still frees the lock.
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.log.WarnContext(ctx, "release project lock", logger.Error(err))
		}
	}()

	return fn(ctx)
}

func projectContext(ctx context.Context, projectID uuid.UUID) context.Context {
	return logger.WithProjectID(ctx, projectID.String())
}

// ListEntries returns all entries of a project ordered by namespace, key and locale.
func (s *Service) ListEntries(ctx context.Context, projectID uuid.UUID) ([]entry.Entry, error) {
	return s.entries.List(ctx, projectID)
}

// MatrixView is a filtered page of the reconciliation matrix.
type MatrixView struct {
	Locales    []string     `json:"locales"`
	Namespaces []string     `json:"namespaces"`
	Rows       []matrix.Row `json:"rows"`
	Stats      matrix.Stats `json:"stats"`
	Total      int          `json:"total"`
}

// Matrix builds the reconciliation matrix and applies f. Stats always cover
// the whole project.
func (s *Service) Matrix(ctx context.Context, projectID uuid.UUID, f matrix.Filter) (*MatrixView, error) {
	entries, err := s.entries.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	m := matrix.Build(entries)
	rows, total := m.Filter(f)
	return &MatrixView{
		Locales:    m.Locales,
		Namespaces: m.Namespaces,
		Rows:       rows,
		Stats:      m.Stats(),
		Total:      total,
	}, nil
}

// Stats returns aggregate counters for a project.
func (s *Service) Stats(ctx context.Context, projectID uuid.UUID) (matrix.Stats, error) {
	entries, err := s.entries.List(ctx, projectID)
	if err != nil {
		return matrix.Stats{}, err
	}
	return matrix.Build(entries).Stats(), nil
}
