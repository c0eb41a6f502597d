package autosync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/internal/vcs"
	"github.com/dmitrymomot/localekit/pkg/logger"
)

// FileSource renders a project as repository files under root.
// *translations.Service satisfies it.
type FileSource interface {
	ExportFiles(ctx context.Context, projectID uuid.UUID, root string) (map[string]string, error)
}

// Syncer pushes one project to its sync target.
type Syncer struct {
	targets store.Targets
	files   FileSource
	pusher  vcs.Pusher
	log     *slog.Logger
	now     func() time.Time
}

// NewSyncer creates a Syncer. A nil logger discards output.
func NewSyncer(targets store.Targets, files FileSource, pusher vcs.Pusher, log *slog.Logger) *Syncer {
	if log == nil {
		log = logger.NewNope()
	}
	return &Syncer{targets: targets, files: files, pusher: pusher, log: log, now: time.Now}
}

// Sync renders the project and pushes it. The target's last sync time and
// commit are recorded on success, also when nothing changed.
// translations.ErrSyncNotConfigured if the project has no target.
func (s *Syncer) Sync(ctx context.Context, args SyncArgs) (*vcs.PushResult, error) {
	ctx = logger.WithProjectID(ctx, args.ProjectID.String())

	target, err := s.targets.GetTarget(ctx, args.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, translations.ErrSyncNotConfigured
		}
		return nil, err
	}

	files, err := s.files.ExportFiles(ctx, args.ProjectID, target.LocalesPath)
	if err != nil {
		return nil, fmt.Errorf("render files: %w", err)
	}
	if len(files) == 0 {
		s.log.InfoContext(ctx, "sync skipped, project is empty")
		return &vcs.PushResult{Branch: target.Branch}, nil
	}

	res, err := s.pusher.Push(ctx, vcs.PushRequest{
		Owner:       target.Owner,
		Repo:        target.Repo,
		Branch:      target.Branch,
		Files:       files,
		Message:     args.Message,
		Body:        fmt.Sprintf("Updates %d translation file(s) under %s.", len(files), target.LocalesPath),
		PullRequest: args.PullRequest,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "push failed",
			slog.String("repo", target.Owner+"/"+target.Repo),
			logger.Error(err),
		)
		return nil, err
	}

	if err := s.targets.MarkSynced(ctx, args.ProjectID, s.now(), res.Commit); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "project synced",
		slog.String("repo", target.Owner+"/"+target.Repo),
		slog.String("branch", res.Branch),
		slog.String("commit", res.Commit),
		slog.Bool("changed", res.Changed),
		slog.String("pull_request", res.PullRequestURL),
	)
	return res, nil
}

// Due returns projects whose auto-sync interval has elapsed.
func (s *Syncer) Due(ctx context.Context) ([]uuid.UUID, error) {
	targets, err := s.targets.DueTargets(ctx, s.now())
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.ProjectID)
	}
	return ids, nil
}
