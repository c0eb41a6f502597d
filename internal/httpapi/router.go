package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/pkg/archive"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/logger"
	"github.com/dmitrymomot/localekit/pkg/matrix"
)

// DefaultMaxUploadSize caps request bodies of upload routes.
const DefaultMaxUploadSize = 32 << 20

// Service is the translation service the API exposes.
// *translations.Service satisfies it.
type Service interface {
	ListEntries(ctx context.Context, projectID uuid.UUID) ([]entry.Entry, error)
	Matrix(ctx context.Context, projectID uuid.UUID, f matrix.Filter) (*translations.MatrixView, error)
	Stats(ctx context.Context, projectID uuid.UUID) (matrix.Stats, error)
	ImportArchive(ctx context.Context, projectID uuid.UUID, data []byte, mode translations.Mode) (*translations.ImportResult, error)
	ImportJSON(ctx context.Context, projectID uuid.UUID, in translations.JSONImport, data []byte) (*translations.ImportResult, error)
	PreviewArchive(data []byte) (*archive.PreviewResult, error)
	PreviewJSON(data []byte) (*translations.JSONPreview, error)
	ExportArchive(ctx context.Context, projectID uuid.UUID) ([]byte, error)
	PublishExport(ctx context.Context, projectID uuid.UUID) (*translations.PublishedExport, error)
	UpdateEntry(ctx context.Context, projectID uuid.UUID, in translations.UpdateEntry) (*entry.Entry, error)
	AddKey(ctx context.Context, projectID uuid.UUID, in translations.AddKey) ([]entry.Entry, error)
	AddLocale(ctx context.Context, projectID uuid.UUID, locale string) ([]entry.Entry, error)
	RenameKey(ctx context.Context, projectID uuid.UUID, in translations.RenameKey) (int64, error)
	DeleteKey(ctx context.Context, projectID uuid.UUID, namespace, dotKey string) (int64, error)
	DeleteLocale(ctx context.Context, projectID uuid.UUID, locale string) (int64, error)
	SyncTarget(ctx context.Context, projectID uuid.UUID) (store.SyncTarget, error)
	SaveSyncTarget(ctx context.Context, projectID uuid.UUID, in translations.SyncTargetInput) (store.SyncTarget, error)
	RequestSync(ctx context.Context, projectID uuid.UUID, req translations.SyncRequest) error
}

var _ Service = (*translations.Service)(nil)

// Option configures the router.
type Option func(*api)

// WithLogger sets the logger for requests, panics and failed handlers.
func WithLogger(l *slog.Logger) Option {
	return func(a *api) {
		if l != nil {
			a.log = l
		}
	}
}

// WithReadinessCheck adds a named check to /health/ready.
func WithReadinessCheck(name string, fn CheckFunc) Option {
	return func(a *api) { a.checks[name] = fn }
}

// WithMaxUploadSize caps upload request bodies.
func WithMaxUploadSize(n int64) Option {
	return func(a *api) {
		if n > 0 {
			a.maxUpload = n
		}
	}
}

type api struct {
	svc       Service
	log       *slog.Logger
	checks    map[string]CheckFunc
	maxUpload int64
}

// handlerFunc is a handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// NewRouter builds the HTTP handler.
func NewRouter(svc Service, opts ...Option) http.Handler {
	a := &api{
		svc:       svc,
		log:       logger.NewNope(),
		checks:    make(map[string]CheckFunc),
		maxUpload: DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(a)
	}

	r := chi.NewRouter()
	r.Use(RequestID, middleware.CleanPath, requestLogger(a.log), recoverer(a.log))
	r.NotFound(a.handle(func(http.ResponseWriter, *http.Request) error {
		return ErrNotFound("route not found")
	}))
	r.MethodNotAllowed(a.handle(func(http.ResponseWriter, *http.Request) error {
		return NewHTTPError(http.StatusMethodNotAllowed, "method not allowed")
	}))

	r.Get("/health/live", livenessHandler)
	r.Get("/health/ready", readinessHandler(a.checks, a.log))

	r.Route("/projects/{projectID}", func(r chi.Router) {
		r.Get("/entries", a.handle(a.listEntries))
		r.Put("/entries", a.handle(a.updateEntry))
		r.Get("/matrix", a.handle(a.matrix))
		r.Get("/stats", a.handle(a.stats))

		r.Group(func(r chi.Router) {
			r.Use(a.limitBody)
			r.Post("/import/zip", a.handle(a.importZip))
			r.Post("/import/json", a.handle(a.importJSON))
			r.Post("/preview/zip", a.handle(a.previewZip))
			r.Post("/preview/json", a.handle(a.previewJSON))
		})

		r.Get("/export", a.handle(a.export))
		r.Post("/exports", a.handle(a.publishExport))

		r.Post("/keys", a.handle(a.addKey))
		r.Post("/keys/rename", a.handle(a.renameKey))
		r.Delete("/keys", a.handle(a.deleteKey))
		r.Post("/locales", a.handle(a.addLocale))
		r.Delete("/locales/{locale}", a.handle(a.deleteLocale))

		r.Get("/sync-target", a.handle(a.syncTarget))
		r.Put("/sync-target", a.handle(a.saveSyncTarget))
		r.Post("/sync", a.handle(a.requestSync))
	})

	return r
}

func (a *api) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		he := toHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			a.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
		} else {
			a.log.DebugContext(r.Context(), "request rejected", logger.Error(err))
		}
		writeError(w, r, he)
	}
}

func (a *api) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > a.maxUpload {
			writeError(w, r, toHTTPError(&http.MaxBytesError{Limit: a.maxUpload}))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)
		next.ServeHTTP(w, r)
	})
}
