package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/pkg/entry"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mk(projectID uuid.UUID, locale, namespace, key, value string) entry.Entry {
	return entry.New(projectID, entry.Key{Locale: locale, Namespace: namespace, DotKey: key}, value, now)
}

func values(entries []entry.Entry) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Locale+"/"+e.FullKey()] = e.Value
	}
	return out
}

// entriesContract exercises behavior every Entries implementation must share.
func entriesContract(t *testing.T, s store.Entries) {
	t.Helper()
	ctx := context.Background()

	t.Run("upsert inserts then updates", func(t *testing.T) {
		p := uuid.New()

		n, err := s.Upsert(ctx, []entry.Entry{mk(p, "en", "common", "a", "A"), mk(p, "fr", "common", "a", "Á")})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		_, err = s.Upsert(ctx, []entry.Entry{mk(p, "en", "common", "a", "A2 {{x}}")})
		require.NoError(t, err)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, map[string]string{"en/common.a": "A2 {{x}}", "fr/common.a": "Á"}, values(list))
		assert.Equal(t, []string{"x"}, list[0].Placeholders.Sorted())
	})

	t.Run("list is ordered and scoped to the project", func(t *testing.T) {
		p, other := uuid.New(), uuid.New()

		_, err := s.Upsert(ctx, []entry.Entry{
			mk(p, "fr", "b", "k", "1"),
			mk(p, "en", "a", "z", "2"),
			mk(p, "en", "a", "k", "3"),
			mk(other, "en", "a", "k", "x"),
		})
		require.NoError(t, err)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		got := make([]string, 0, len(list))
		for _, e := range list {
			got = append(got, e.Locale+"/"+e.FullKey())
		}
		assert.Equal(t, []string{"en/a.k", "en/a.z", "fr/b.k"}, got)
	})

	t.Run("replace whole project", func(t *testing.T) {
		p := uuid.New()

		_, err := s.Upsert(ctx, []entry.Entry{mk(p, "en", "common", "old", "x"), mk(p, "de", "auth", "old", "y")})
		require.NoError(t, err)

		n, err := s.Replace(ctx, p, store.Scope{}, []entry.Entry{mk(p, "en", "common", "new", "z")})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"en/common.new": "z"}, values(list))
	})

	t.Run("replace one locale and namespace", func(t *testing.T) {
		p := uuid.New()

		_, err := s.Upsert(ctx, []entry.Entry{
			mk(p, "en", "common", "a", "1"),
			mk(p, "en", "auth", "a", "2"),
			mk(p, "fr", "common", "a", "3"),
		})
		require.NoError(t, err)

		_, err = s.Replace(ctx, p, store.Scope{Locale: "en", Namespace: "common"}, []entry.Entry{mk(p, "en", "common", "b", "4")})
		require.NoError(t, err)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"en/auth.a": "2", "en/common.b": "4", "fr/common.a": "3"}, values(list))
	})

	t.Run("failed replace leaves data untouched", func(t *testing.T) {
		p := uuid.New()

		_, err := s.Upsert(ctx, []entry.Entry{mk(p, "en", "common", "a", "1")})
		require.NoError(t, err)

		dup := mk(p, "de", "common", "a", "x")
		_, err = s.Replace(ctx, p, store.Scope{Locale: "de"}, []entry.Entry{dup, mk(p, "de", "common", "a", "y")})
		require.ErrorIs(t, err, store.ErrConflict)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"en/common.a": "1"}, values(list))
	})

	t.Run("insert conflicts on existing key", func(t *testing.T) {
		p := uuid.New()

		require.NoError(t, s.Insert(ctx, []entry.Entry{mk(p, "en", "common", "a", "")}))
		err := s.Insert(ctx, []entry.Entry{mk(p, "fr", "common", "a", ""), mk(p, "en", "common", "a", "")})
		require.ErrorIs(t, err, store.ErrConflict)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("update existing and missing entry", func(t *testing.T) {
		p := uuid.New()

		orig := mk(p, "en", "common", "a", "old")
		_, err := s.Upsert(ctx, []entry.Entry{orig})
		require.NoError(t, err)

		upd := entry.Entry{ProjectID: p, Locale: "en", Namespace: "common", DotKey: "a"}
		upd.SetValue("new {n}", now.Add(time.Minute))
		require.NoError(t, s.Update(ctx, &upd))
		assert.Equal(t, orig.ID, upd.ID)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "new {n}", list[0].Value)
		assert.True(t, list[0].UpdatedAt.Equal(now.Add(time.Minute)))

		missing := entry.Entry{ProjectID: p, Locale: "fr", Namespace: "common", DotKey: "a"}
		require.ErrorIs(t, s.Update(ctx, &missing), store.ErrNotFound)
	})

	t.Run("rename key", func(t *testing.T) {
		p := uuid.New()

		_, err := s.Upsert(ctx, []entry.Entry{
			mk(p, "en", "common", "old", "1"),
			mk(p, "fr", "common", "old", "2"),
			mk(p, "en", "common", "taken", "3"),
		})
		require.NoError(t, err)

		_, err = s.RenameKey(ctx, p, "common", "old", "taken", now)
		require.ErrorIs(t, err, store.ErrConflict)

		_, err = s.RenameKey(ctx, p, "common", "ghost", "fresh", now)
		require.ErrorIs(t, err, store.ErrNotFound)

		n, err := s.RenameKey(ctx, p, "common", "old", "fresh", now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"en/common.fresh": "1", "fr/common.fresh": "2", "en/common.taken": "3"}, values(list))
	})

	t.Run("delete key and locale", func(t *testing.T) {
		p := uuid.New()

		_, err := s.Upsert(ctx, []entry.Entry{
			mk(p, "en", "common", "a", "1"),
			mk(p, "fr", "common", "a", "2"),
			mk(p, "en", "common", "b", "3"),
			mk(p, "fr", "common", "b", "4"),
		})
		require.NoError(t, err)

		n, err := s.DeleteKey(ctx, p, "common", "a")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.DeleteLocale(ctx, p, "fr")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		list, err := s.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"en/common.b": "3"}, values(list))
	})
}

// targetsContract exercises behavior every Targets implementation must share.
func targetsContract(t *testing.T, s store.Targets) {
	t.Helper()
	ctx := context.Background()

	p := uuid.New()
	_, err := s.GetTarget(ctx, p)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.MarkSynced(ctx, p, now, "sha"), store.ErrNotFound)

	target := store.SyncTarget{
		ProjectID:       p,
		Owner:           "acme",
		Repo:            "web",
		Branch:          "main",
		LocalesPath:     "locales",
		AutoSync:        true,
		IntervalMinutes: 30,
		UpdatedAt:       now,
	}
	require.NoError(t, s.SaveTarget(ctx, target))

	due, err := s.DueTargets(ctx, now)
	require.NoError(t, err)
	assert.Contains(t, projectIDs(due), p)

	require.NoError(t, s.MarkSynced(ctx, p, now, "abc123"))

	due, err = s.DueTargets(ctx, now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.NotContains(t, projectIDs(due), p)

	due, err = s.DueTargets(ctx, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Contains(t, projectIDs(due), p)

	target.Branch = "develop"
	require.NoError(t, s.SaveTarget(ctx, target))

	got, err := s.GetTarget(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "develop", got.Branch)
	assert.Equal(t, "abc123", got.LastCommit)
	require.NotNil(t, got.LastSyncAt)
	assert.True(t, got.LastSyncAt.Equal(now))
}

func projectIDs(targets []store.SyncTarget) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.ProjectID)
	}
	return out
}

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("entries", func(t *testing.T) {
		t.Parallel()
		entriesContract(t, store.NewMemory())
	})

	t.Run("targets", func(t *testing.T) {
		t.Parallel()
		targetsContract(t, store.NewMemory())
	})
}

func TestSyncTargetDue(t *testing.T) {
	t.Parallel()

	last := now.Add(-time.Hour)
	tests := []struct {
		name   string
		target store.SyncTarget
		want   bool
	}{
		{name: "disabled", target: store.SyncTarget{AutoSync: false}, want: false},
		{name: "never synced", target: store.SyncTarget{AutoSync: true, IntervalMinutes: 30}, want: true},
		{name: "interval elapsed", target: store.SyncTarget{AutoSync: true, IntervalMinutes: 60, LastSyncAt: &last}, want: true},
		{name: "interval pending", target: store.SyncTarget{AutoSync: true, IntervalMinutes: 90, LastSyncAt: &last}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.target.Due(now))
		})
	}
}
