package translations

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/pkg/logger"
)

// Defaults applied to a saved sync target.
const (
	DefaultBranch       = "main"
	DefaultLocalesPath  = "locales"
	DefaultSyncInterval = 60
)

var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// SyncTargetInput configures where a project is pushed.
type SyncTargetInput struct {
	Owner           string `json:"owner"`
	Repo            string `json:"repo"`
	Branch          string `json:"branch"`
	LocalesPath     string `json:"localesPath"`
	IntervalMinutes int    `json:"intervalMinutes"`
	AutoSync        bool   `json:"autoSync"`
}

// Validate checks repository coordinates and the sync interval.
func (in SyncTargetInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Owner, validation.Required, validation.Match(repoNamePattern)),
		validation.Field(&in.Repo, validation.Required, validation.Match(repoNamePattern)),
		validation.Field(&in.Branch, validation.Length(0, 255)),
		validation.Field(&in.LocalesPath, validation.By(func(any) error {
			if strings.Contains(in.LocalesPath, "..") {
				return errors.New("must not contain ..")
			}
			return nil
		})),
		validation.Field(&in.IntervalMinutes, validation.Min(0), validation.Max(7*24*60)),
	)
}

// SyncTarget returns the project's sync target. store.ErrNotFound if none.
func (s *Service) SyncTarget(ctx context.Context, projectID uuid.UUID) (store.SyncTarget, error) {
	return s.targets.GetTarget(ctx, projectID)
}

// SaveSyncTarget creates or updates the project's sync target. Sync history
// of an existing target is kept.
func (s *Service) SaveSyncTarget(ctx context.Context, projectID uuid.UUID, in SyncTargetInput) (store.SyncTarget, error) {
	if err := in.Validate(); err != nil {
		return store.SyncTarget{}, err
	}

	t := store.SyncTarget{
		ProjectID:       projectID,
		Owner:           in.Owner,
		Repo:            in.Repo,
		Branch:          in.Branch,
		LocalesPath:     strings.Trim(in.LocalesPath, "/"),
		IntervalMinutes: in.IntervalMinutes,
		AutoSync:        in.AutoSync,
		UpdatedAt:       s.now(),
	}
	if t.Branch == "" {
		t.Branch = DefaultBranch
	}
	if t.LocalesPath == "" {
		t.LocalesPath = DefaultLocalesPath
	}
	if t.IntervalMinutes == 0 {
		t.IntervalMinutes = DefaultSyncInterval
	}

	if err := s.targets.SaveTarget(ctx, t); err != nil {
		return store.SyncTarget{}, err
	}

	saved, err := s.targets.GetTarget(ctx, projectID)
	if err != nil {
		return store.SyncTarget{}, err
	}
	s.log.InfoContext(projectContext(ctx, projectID), "sync target saved",
		slog.String("repo", t.Owner+"/"+t.Repo),
		slog.String("branch", t.Branch),
		slog.Bool("auto_sync", t.AutoSync),
	)
	return saved, nil
}

// SyncRequest asks for a push of the project to its sync target.
type SyncRequest struct {
	Message     string `json:"message"`
	PullRequest bool   `json:"pullRequest"`
}

// RequestSync queues a push. ErrSyncNotConfigured if the project has no target.
func (s *Service) RequestSync(ctx context.Context, projectID uuid.UUID, req SyncRequest) error {
	if s.sync == nil {
		return ErrSyncUnavailable
	}
	ctx = projectContext(ctx, projectID)

	if _, err := s.targets.GetTarget(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSyncNotConfigured
		}
		return err
	}

	if err := s.sync.EnqueueSync(ctx, projectID, req); err != nil {
		s.log.ErrorContext(ctx, "enqueue sync", logger.Error(err))
		return err
	}
	s.log.InfoContext(ctx, "sync requested", slog.Bool("pull_request", req.PullRequest))
	return nil
}
