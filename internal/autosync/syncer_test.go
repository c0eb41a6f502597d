package autosync_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/internal/autosync"
	"github.com/dmitrymomot/localekit/internal/store"
	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/internal/vcs"
)

type fakePusher struct {
	mu   sync.Mutex
	reqs []vcs.PushRequest
	err  error
}

func (p *fakePusher) Push(_ context.Context, req vcs.PushRequest) (*vcs.PushResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.reqs = append(p.reqs, req)
	return &vcs.PushResult{Commit: "abc123", Branch: req.Branch, Changed: true}, nil
}

func setup(t *testing.T) (*translations.Service, *store.Memory, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()
	svc := translations.New(mem, mem)
	p := uuid.New()

	_, err := svc.ImportJSON(ctx, p, translations.JSONImport{Locale: "en", Namespace: "common"}, []byte(`{"a":{"b":"B"}}`))
	require.NoError(t, err)
	_, err = svc.ImportJSON(ctx, p, translations.JSONImport{Locale: "de", Namespace: "common"}, []byte(`{"a":{"b":"Be"}}`))
	require.NoError(t, err)
	return svc, mem, p
}

func TestSyncer_Sync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("pushes rendered files and records the commit", func(t *testing.T) {
		t.Parallel()
		svc, mem, p := setup(t)
		_, err := svc.SaveSyncTarget(ctx, p, translations.SyncTargetInput{Owner: "acme", Repo: "web", LocalesPath: "public/locales"})
		require.NoError(t, err)

		pusher := &fakePusher{}
		s := autosync.NewSyncer(mem, svc, pusher, nil)

		res, err := s.Sync(ctx, autosync.SyncArgs{ProjectID: p, Message: "sync", PullRequest: true})
		require.NoError(t, err)
		assert.Equal(t, "abc123", res.Commit)

		require.Len(t, pusher.reqs, 1)
		req := pusher.reqs[0]
		assert.Equal(t, "acme", req.Owner)
		assert.Equal(t, "main", req.Branch)
		assert.True(t, req.PullRequest)
		assert.Equal(t, "sync", req.Message)
		assert.Equal(t, map[string]string{
			"public/locales/de/common.json": "{\n  \"a\": {\n    \"b\": \"Be\"\n  }\n}\n",
			"public/locales/en/common.json": "{\n  \"a\": {\n    \"b\": \"B\"\n  }\n}\n",
		}, req.Files)

		target, err := mem.GetTarget(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "abc123", target.LastCommit)
		require.NotNil(t, target.LastSyncAt)
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		svc, mem, p := setup(t)
		s := autosync.NewSyncer(mem, svc, &fakePusher{}, nil)

		_, err := s.Sync(ctx, autosync.SyncArgs{ProjectID: p})
		require.ErrorIs(t, err, translations.ErrSyncNotConfigured)
	})

	t.Run("push failure leaves the target unsynced", func(t *testing.T) {
		t.Parallel()
		svc, mem, p := setup(t)
		_, err := svc.SaveSyncTarget(ctx, p, translations.SyncTargetInput{Owner: "acme", Repo: "web"})
		require.NoError(t, err)

		boom := errors.New("boom")
		s := autosync.NewSyncer(mem, svc, &fakePusher{err: boom}, nil)

		_, err = s.Sync(ctx, autosync.SyncArgs{ProjectID: p})
		require.ErrorIs(t, err, boom)

		target, err := mem.GetTarget(ctx, p)
		require.NoError(t, err)
		assert.Nil(t, target.LastSyncAt)
	})

	t.Run("empty project is not pushed", func(t *testing.T) {
		t.Parallel()
		mem := store.NewMemory()
		svc := translations.New(mem, mem)
		p := uuid.New()
		_, err := svc.SaveSyncTarget(ctx, p, translations.SyncTargetInput{Owner: "acme", Repo: "web"})
		require.NoError(t, err)

		pusher := &fakePusher{}
		res, err := autosync.NewSyncer(mem, svc, pusher, nil).Sync(ctx, autosync.SyncArgs{ProjectID: p})
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Empty(t, pusher.reqs)
	})
}

func TestSyncer_Due(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemory()
	svc := translations.New(mem, mem)

	auto, manual, recent := uuid.New(), uuid.New(), uuid.New()
	for id, in := range map[uuid.UUID]translations.SyncTargetInput{
		auto:   {Owner: "acme", Repo: "a", AutoSync: true},
		manual: {Owner: "acme", Repo: "b"},
		recent: {Owner: "acme", Repo: "c", AutoSync: true},
	} {
		_, err := svc.SaveSyncTarget(ctx, id, in)
		require.NoError(t, err)
	}
	require.NoError(t, mem.MarkSynced(ctx, recent, time.Now(), "x"))

	ids, err := autosync.NewSyncer(mem, svc, &fakePusher{}, nil).Due(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{auto}, ids)
}

func TestSyncArgs(t *testing.T) {
	t.Parallel()

	args := autosync.SyncArgs{}
	assert.Equal(t, "localekit:sync", args.Kind())
	opts := args.InsertOpts()
	assert.True(t, opts.UniqueOpts.ByArgs)
	assert.Equal(t, time.Minute, opts.UniqueOpts.ByPeriod)
}

func TestNewManager(t *testing.T) {
	t.Parallel()

	_, err := autosync.NewManager(nil, nil)
	require.ErrorIs(t, err, autosync.ErrPoolRequired)
}

func TestHealthcheck_NilManager(t *testing.T) {
	t.Parallel()

	err := autosync.Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, autosync.ErrHealthcheckFailed)
}
