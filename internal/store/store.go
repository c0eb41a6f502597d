package store

import (
	"context"
	"embed"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/entry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the goose migrations rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Scope limits a replace to part of a project. Empty fields match everything.
type Scope struct {
	Locale    string
	Namespace string
}

func (s Scope) matches(e entry.Entry) bool {
	return (s.Locale == "" || s.Locale == e.Locale) &&
		(s.Namespace == "" || s.Namespace == e.Namespace)
}

// Entries stores translation entries.
type Entries interface {
	// List returns a project's entries ordered by namespace, key and locale.
	List(ctx context.Context, projectID uuid.UUID) ([]entry.Entry, error)
	// Upsert inserts entries or updates the value of existing ones.
	Upsert(ctx context.Context, entries []entry.Entry) (int, error)
	// Replace deletes the scope of the project, then inserts entries.
	Replace(ctx context.Context, projectID uuid.UUID, scope Scope, entries []entry.Entry) (int, error)
	// Insert adds new entries and fails with ErrConflict if any already exists.
	Insert(ctx context.Context, entries []entry.Entry) error
	// Update writes value, placeholders and timestamp of an existing entry and
	// fills in its ID. ErrNotFound if the entry does not exist.
	Update(ctx context.Context, e *entry.Entry) error
	// RenameKey moves a key in every locale. ErrNotFound if the old key does
	// not exist, ErrConflict if the new one does.
	RenameKey(ctx context.Context, projectID uuid.UUID, namespace, oldKey, newKey string, at time.Time) (int64, error)
	DeleteKey(ctx context.Context, projectID uuid.UUID, namespace, dotKey string) (int64, error)
	DeleteLocale(ctx context.Context, projectID uuid.UUID, locale string) (int64, error)
}

// SyncTarget is the repository a project pushes its translations to.
type SyncTarget struct {
	UpdatedAt       time.Time  `json:"updatedAt"`
	LastSyncAt      *time.Time `json:"lastSyncAt"`
	Owner           string     `json:"owner"`
	Repo            string     `json:"repo"`
	Branch          string     `json:"branch"`
	LocalesPath     string     `json:"localesPath"`
	LastCommit      string     `json:"lastCommit"`
	IntervalMinutes int        `json:"intervalMinutes"`
	AutoSync        bool       `json:"autoSync"`
	ProjectID       uuid.UUID  `json:"projectId"`
}

// Due reports whether an auto-sync target should be pushed at now.
func (t SyncTarget) Due(now time.Time) bool {
	if !t.AutoSync {
		return false
	}
	if t.LastSyncAt == nil {
		return true
	}
	return !t.LastSyncAt.Add(time.Duration(t.IntervalMinutes) * time.Minute).After(now)
}

// Targets stores sync targets.
type Targets interface {
	GetTarget(ctx context.Context, projectID uuid.UUID) (SyncTarget, error)
	SaveTarget(ctx context.Context, t SyncTarget) error
	DueTargets(ctx context.Context, now time.Time) ([]SyncTarget, error)
	MarkSynced(ctx context.Context, projectID uuid.UUID, at time.Time, commit string) error
}
