// Command localekit serves the translation API and runs repository sync jobs.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localekit/internal/autosync"
	"github.com/dmitrymomot/localekit/internal/httpapi"
	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/internal/vcs"
	"github.com/dmitrymomot/localekit/pkg/config"
	"github.com/dmitrymomot/localekit/pkg/db"
	"github.com/dmitrymomot/localekit/pkg/flatmap"
	"github.com/dmitrymomot/localekit/pkg/logger"
	"github.com/dmitrymomot/localekit/pkg/redis"
	"github.com/dmitrymomot/localekit/pkg/storage"
)

// Config is the process configuration, read from the environment.
type Config struct {
	DB      db.Config
	Storage storage.Config
	Sentry  logger.SentryConfig
	GitHub  vcs.Config

	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxUploadSize   int64         `env:"HTTP_MAX_UPLOAD_SIZE" envDefault:"33554432"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`

	// Without a Redis URL writes are not serialized across instances.
	RedisURL string        `env:"REDIS_URL"`
	LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"30s"`

	ExportIndent      int           `env:"EXPORT_INDENT" envDefault:"2"`
	ExportLinkTTL     time.Duration `env:"EXPORT_LINK_TTL" envDefault:"15m"`
	ImportPolicy      string        `env:"IMPORT_POLICY" envDefault:"strict"`
	ImportMaxFileSize int64         `env:"IMPORT_MAX_FILE_SIZE" envDefault:"10485760"`
	ImportMaxFiles    int           `env:"IMPORT_MAX_FILES" envDefault:"10000"`

	SyncSchedule   string `env:"SYNC_SCHEDULE" envDefault:"*/5 * * * *"`
	SyncMaxWorkers int    `env:"SYNC_MAX_WORKERS" envDefault:"4"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.NewWithSentry(cfg.Sentry,
		logger.WithLevel(cfg.LogLevel),
		logger.WithExtractors(logger.ProjectID, httpapi.RequestIDExtractor()),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("localekit stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	policy, err := flatmap.ParsePolicy(cfg.ImportPolicy)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, store.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
		pool.Close()
		return err
	}
	if err := autosync.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return err
	}

	repo := store.NewPostgres(pool)
	opts := []translations.Option{
		translations.WithLogger(log),
		translations.WithImportPolicy(policy),
		translations.WithIndent(cfg.ExportIndent),
		translations.WithArchiveLimits(cfg.ImportMaxFileSize, cfg.ImportMaxFiles),
	}
	routerOpts := []httpapi.Option{
		httpapi.WithLogger(log),
		httpapi.WithMaxUploadSize(cfg.MaxUploadSize),
		httpapi.WithReadinessCheck("postgres", db.Healthcheck(pool)),
	}
	var hooks []func(context.Context) error

	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			pool.Close()
			return err
		}
		opts = append(opts, translations.WithLocker(redis.NewLocker(client, "localekit:lock:", cfg.LockTTL)))
		routerOpts = append(routerOpts, httpapi.WithReadinessCheck("redis", redis.Healthcheck(client)))
		defer closeRedis(client, log)
	} else {
		log.Warn("REDIS_URL is not set, project writes are serialized per process only")
	}

	if cfg.Storage.Enabled() {
		st, err := storage.New(cfg.Storage)
		if err != nil {
			pool.Close()
			return err
		}
		opts = append(opts, translations.WithExportStorage(st, cfg.ExportLinkTTL))
	}

	if cfg.GitHub.Token != "" {
		pusher, err := vcs.NewGitHub(cfg.GitHub)
		if err != nil {
			pool.Close()
			return err
		}
		// The syncer exports through its own service instance, which never
		// enqueues, so jobs cannot schedule themselves.
		exporter := translations.New(repo, repo, opts...)
		syncer := autosync.NewSyncer(repo, exporter, pusher, log)

		manager, err := autosync.NewManager(pool, syncer,
			autosync.WithLogger(log),
			autosync.WithSchedule(cfg.SyncSchedule),
			autosync.WithMaxWorkers(cfg.SyncMaxWorkers),
		)
		if err != nil {
			pool.Close()
			return err
		}
		if err := manager.Start(ctx); err != nil {
			pool.Close()
			return err
		}
		opts = append(opts, translations.WithSyncEnqueuer(manager))
		routerOpts = append(routerOpts, httpapi.WithReadinessCheck("sync", autosync.Healthcheck(manager)))
		hooks = append(hooks, manager.Shutdown())
	} else {
		log.Warn("GITHUB_TOKEN is not set, repository sync is disabled")
	}
	hooks = append(hooks, db.Shutdown(pool))

	svc := translations.New(repo, repo, opts...)

	return httpapi.Run(ctx, httpapi.ServerConfig{
		Handler:         httpapi.NewRouter(svc, routerOpts...),
		Logger:          log,
		Address:         cfg.HTTPAddr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		ShutdownHooks:   hooks,
	})
}

func closeRedis(client goredis.UniversalClient, log *slog.Logger) {
	if err := redis.Shutdown(client)(context.Background()); err != nil {
		log.Warn("close redis", logger.Error(err))
	}
}
