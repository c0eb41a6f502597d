package autosync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/pkg/logger"
)

const (
	DefaultSchedule   = "*/5 * * * *"
	defaultMaxWorkers = 10
	syncMaxAttempts   = 5
)

// SyncArgs are the arguments of a sync job.
type SyncArgs struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Message     string    `json:"message,omitempty"`
	PullRequest bool      `json:"pull_request,omitempty"`
}

func (SyncArgs) Kind() string { return "localekit:sync" }

func (SyncArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: syncMaxAttempts,
		UniqueOpts:  river.UniqueOpts{ByArgs: true, ByPeriod: time.Minute},
	}
}

type scanArgs struct{}

func (scanArgs) Kind() string { return "localekit:sync-scan" }

func (scanArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: 1}
}

// Option configures the Manager.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	schedule   string
	maxWorkers int
}

// WithLogger sets the logger for the manager and River.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSchedule sets the cron expression (5 fields) of the due-target scan.
func WithSchedule(expr string) Option {
	return func(c *config) {
		if expr != "" {
			c.schedule = expr
		}
	}
}

// WithMaxWorkers sets the number of concurrent jobs.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// Manager runs sync jobs. It implements translations.SyncEnqueuer.
type Manager struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

var _ translations.SyncEnqueuer = (*Manager)(nil)

// NewManager creates the River client. Jobs can be enqueued before Start.
func NewManager(pool *pgxpool.Pool, syncer *Syncer, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &config{
		logger:     logger.NewNope(),
		schedule:   DefaultSchedule,
		maxWorkers: defaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	schedule, err := parseSchedule(cfg.schedule)
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &syncWorker{syncer: syncer, logger: cfg.logger})
	river.AddWorker(workers, &scanWorker{syncer: syncer, logger: cfg.logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:  map[string]river.QueueConfig{river.QueueDefault: {MaxWorkers: cfg.maxWorkers}},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(schedule, func() (river.JobArgs, *river.InsertOpts) {
				return scanArgs{}, nil
			}, &river.PeriodicJobOpts{RunOnStart: true}),
		},
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("autosync: create client: %w", err)
	}

	return &Manager{pool: pool, client: client, logger: cfg.logger}, nil
}

// EnqueueSync queues a push of one project.
func (m *Manager) EnqueueSync(ctx context.Context, projectID uuid.UUID, req translations.SyncRequest) error {
	_, err := m.client.Insert(ctx, SyncArgs{
		ProjectID:   projectID,
		Message:     req.Message,
		PullRequest: req.PullRequest,
	}, nil)
	if err != nil {
		return fmt.Errorf("autosync: enqueue: %w", err)
	}
	return nil
}

// Start begins processing jobs and the periodic scan.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("autosync: start client: %w", err)
	}

	m.started = true
	m.logger.Info("sync manager started")
	return nil
}

// Stop waits for running jobs to finish.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("autosync: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("sync manager stopped")
	return nil
}

// Shutdown returns a shutdown function for the manager.
func (m *Manager) Shutdown() func(context.Context) error {
	return m.Stop
}

// Healthcheck verifies the manager is running and its pool is reachable.
func Healthcheck(m *Manager) func(context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return errors.Join(ErrHealthcheckFailed, errors.New("manager is nil"))
		}

		m.mu.Lock()
		started := m.started
		m.mu.Unlock()

		if !started {
			return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
		}
		if err := m.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Migrate applies River's schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if pool == nil {
		return ErrPoolRequired
	}

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), &rivermigrate.Config{Logger: log})
	if err != nil {
		return fmt.Errorf("autosync: create migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return fmt.Errorf("autosync: migrate: %w", err)
	}
	if log != nil && len(res.Versions) > 0 {
		log.InfoContext(ctx, "river migrations applied", slog.Int("count", len(res.Versions)))
	}
	return nil
}

type syncWorker struct {
	river.WorkerDefaults[SyncArgs]
	syncer *Syncer
	logger *slog.Logger
}

func (w *syncWorker) Work(ctx context.Context, job *river.Job[SyncArgs]) error {
	_, err := w.syncer.Sync(ctx, job.Args)
	if errors.Is(err, translations.ErrSyncNotConfigured) {
		w.logger.WarnContext(ctx, "sync target removed, cancelling job",
			slog.String("project_id", job.Args.ProjectID.String()),
			slog.Int64("job_id", job.ID),
		)
		return river.JobCancel(err)
	}
	return err
}

type scanWorker struct {
	river.WorkerDefaults[scanArgs]
	syncer *Syncer
	logger *slog.Logger
}

func (w *scanWorker) Work(ctx context.Context, _ *river.Job[scanArgs]) error {
	ids, err := w.syncer.Due(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	params := make([]river.InsertManyParams, 0, len(ids))
	for _, id := range ids {
		params = append(params, river.InsertManyParams{Args: SyncArgs{ProjectID: id}})
	}

	client := river.ClientFromContext[pgx.Tx](ctx)
	if _, err := client.InsertMany(ctx, params); err != nil {
		return fmt.Errorf("autosync: enqueue due projects: %w", err)
	}

	w.logger.InfoContext(ctx, "due projects enqueued", slog.Int("count", len(ids)))
	return nil
}

type cronSchedule struct {
	schedule cron.Schedule
}

func (s *cronSchedule) Next(current time.Time) time.Time {
	return s.schedule.Next(current)
}

func parseSchedule(expr string) (river.PeriodicSchedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, expr, err)
	}
	return &cronSchedule{schedule: schedule}, nil
}
