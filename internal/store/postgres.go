package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/localekit/pkg/db"
	"github.com/dmitrymomot/localekit/pkg/entry"
	"github.com/dmitrymomot/localekit/pkg/placeholder"
)

// Postgres implements Entries and Targets on PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ Entries = (*Postgres)(nil)
	_ Targets = (*Postgres)(nil)
)

// NewPostgres wraps a pool. Run Migrations before use.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

var entryColumns = []string{"id", "project_id", "locale", "namespace", "dot_key", "value", "placeholders", "updated_at"}

const (
	selectEntries = `
SELECT id, project_id, locale, namespace, dot_key, value, placeholders, updated_at
FROM translation_entries
WHERE project_id = $1
ORDER BY namespace, dot_key, locale`

	upsertEntry = `
INSERT INTO translation_entries (id, project_id, locale, namespace, dot_key, value, placeholders, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (project_id, locale, namespace, dot_key)
DO UPDATE SET value = EXCLUDED.value, placeholders = EXCLUDED.placeholders, updated_at = EXCLUDED.updated_at`

	updateEntry = `
UPDATE translation_entries
SET value = $5, placeholders = $6, updated_at = $7
WHERE project_id = $1 AND locale = $2 AND namespace = $3 AND dot_key = $4
RETURNING id`
)

func (p *Postgres) List(ctx context.Context, projectID uuid.UUID) ([]entry.Entry, error) {
	rows, err := p.pool.Query(ctx, selectEntries, projectID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entry.Entry, error) {
		var e entry.Entry
		err := row.Scan(&e.ID, &e.ProjectID, &e.Locale, &e.Namespace, &e.DotKey, &e.Value, &e.Placeholders, &e.UpdatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	return out, nil
}

func (p *Postgres) Upsert(ctx context.Context, entries []entry.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range entries {
			batch.Queue(upsertEntry, entryArgs(e)...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return 0, fmt.Errorf("upsert entries: %w", err)
	}
	return len(entries), nil
}

func (p *Postgres) Replace(ctx context.Context, projectID uuid.UUID, scope Scope, entries []entry.Entry) (int, error) {
	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
DELETE FROM translation_entries
WHERE project_id = $1
  AND ($2 = '' OR locale = $2)
  AND ($3 = '' OR namespace = $3)`,
			projectID, scope.Locale, scope.Namespace)
		if err != nil {
			return err
		}
		return copyEntries(ctx, tx, entries)
	})
	if err != nil {
		return 0, fmt.Errorf("replace entries: %w", mapError(err))
	}
	return len(entries), nil
}

func (p *Postgres) Insert(ctx context.Context, entries []entry.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		return copyEntries(ctx, tx, entries)
	})
	if err != nil {
		return fmt.Errorf("insert entries: %w", mapError(err))
	}
	return nil
}

func (p *Postgres) Update(ctx context.Context, e *entry.Entry) error {
	err := p.pool.QueryRow(ctx, updateEntry,
		e.ProjectID, e.Locale, e.Namespace, e.DotKey, e.Value, placeholders(*e), e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("update entry: %w", mapError(err))
	}
	return nil
}

func (p *Postgres) RenameKey(ctx context.Context, projectID uuid.UUID, namespace, oldKey, newKey string, at time.Time) (int64, error) {
	var n int64
	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		var taken bool
		if err := tx.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1 FROM translation_entries
    WHERE project_id = $1 AND namespace = $2 AND dot_key = $3
)`, projectID, namespace, newKey).Scan(&taken); err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}

		tag, err := tx.Exec(ctx, `
UPDATE translation_entries
SET dot_key = $4, updated_at = $5
WHERE project_id = $1 AND namespace = $2 AND dot_key = $3`,
			projectID, namespace, oldKey, newKey, at)
		if err != nil {
			return err
		}
		if n = tag.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rename key: %w", mapError(err))
	}
	return n, nil
}

func (p *Postgres) DeleteKey(ctx context.Context, projectID uuid.UUID, namespace, dotKey string) (int64, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM translation_entries WHERE project_id = $1 AND namespace = $2 AND dot_key = $3`,
		projectID, namespace, dotKey)
	if err != nil {
		return 0, fmt.Errorf("delete key: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) DeleteLocale(ctx context.Context, projectID uuid.UUID, locale string) (int64, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM translation_entries WHERE project_id = $1 AND locale = $2`,
		projectID, locale)
	if err != nil {
		return 0, fmt.Errorf("delete locale: %w", err)
	}
	return tag.RowsAffected(), nil
}

func copyEntries(ctx context.Context, tx pgx.Tx, entries []entry.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"translation_entries"},
		entryColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			return entryArgs(entries[i]), nil
		}),
	)
	return err
}

func entryArgs(e entry.Entry) []any {
	return []any{e.ID, e.ProjectID, e.Locale, e.Namespace, e.DotKey, e.Value, placeholders(e), e.UpdatedAt}
}

// placeholders never returns nil: pgx writes a nil map as SQL NULL.
func placeholders(e entry.Entry) placeholder.Set {
	if e.Placeholders == nil {
		return placeholder.Set{}
	}
	return e.Placeholders
}

func mapError(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errors.Join(ErrNotFound, err)
	case db.IsUniqueViolation(err):
		return errors.Join(ErrConflict, err)
	default:
		return err
	}
}

const targetColumns = `project_id, owner, repo, branch, locales_path, auto_sync, interval_minutes, last_sync_at, last_commit, updated_at`

func scanTarget(row pgx.Row) (SyncTarget, error) {
	var t SyncTarget
	err := row.Scan(&t.ProjectID, &t.Owner, &t.Repo, &t.Branch, &t.LocalesPath,
		&t.AutoSync, &t.IntervalMinutes, &t.LastSyncAt, &t.LastCommit, &t.UpdatedAt)
	return t, err
}

func (p *Postgres) GetTarget(ctx context.Context, projectID uuid.UUID) (SyncTarget, error) {
	t, err := scanTarget(p.pool.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM sync_targets WHERE project_id = $1`, projectID))
	if err != nil {
		return SyncTarget{}, fmt.Errorf("get sync target: %w", mapError(err))
	}
	return t, nil
}

func (p *Postgres) SaveTarget(ctx context.Context, t SyncTarget) error {
	_, err := p.pool.Exec(ctx, `
INSERT INTO sync_targets (project_id, owner, repo, branch, locales_path, auto_sync, interval_minutes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (project_id) DO UPDATE SET
    owner = EXCLUDED.owner,
    repo = EXCLUDED.repo,
    branch = EXCLUDED.branch,
    locales_path = EXCLUDED.locales_path,
    auto_sync = EXCLUDED.auto_sync,
    interval_minutes = EXCLUDED.interval_minutes,
    updated_at = EXCLUDED.updated_at`,
		t.ProjectID, t.Owner, t.Repo, t.Branch, t.LocalesPath, t.AutoSync, t.IntervalMinutes, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save sync target: %w", err)
	}
	return nil
}

func (p *Postgres) DueTargets(ctx context.Context, now time.Time) ([]SyncTarget, error) {
	rows, err := p.pool.Query(ctx, `
SELECT `+targetColumns+`
FROM sync_targets
WHERE auto_sync
  AND (last_sync_at IS NULL OR last_sync_at + make_interval(mins => interval_minutes) <= $1)
ORDER BY project_id`, now)
	if err != nil {
		return nil, fmt.Errorf("due sync targets: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SyncTarget, error) {
		return scanTarget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan sync targets: %w", err)
	}
	return out, nil
}

func (p *Postgres) MarkSynced(ctx context.Context, projectID uuid.UUID, at time.Time, commit string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE sync_targets SET last_sync_at = $2, last_commit = $3 WHERE project_id = $1`,
		projectID, at, commit)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
