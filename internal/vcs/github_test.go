package vcs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/internal/vcs"
)

type fakeGitHub struct {
	mu        sync.Mutex
	blobs     map[string]string
	tree      []map[string]any
	commit    map[string]any
	refUpdate map[string]any
	refCreate map[string]any
	pull      map[string]any
	auth      []string
	unchanged bool
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *httptest.Server) {
	t.Helper()
	f := &fakeGitHub{blobs: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/web/git/ref/heads/{branch...}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.PathValue("branch") != "main" {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{"object": map[string]string{"sha": "head-commit"}})
	})
	mux.HandleFunc("GET /repos/acme/web/git/commits/head-commit", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, map[string]any{"sha": "head-commit", "tree": map[string]string{"sha": "head-tree"}})
	})
	mux.HandleFunc("POST /repos/acme/web/git/blobs", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var in map[string]string
		decode(t, r, &in)
		f.mu.Lock()
		sha := "blob-" + in["content"]
		f.blobs[sha] = in["content"]
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"sha": sha})
	})
	mux.HandleFunc("POST /repos/acme/web/git/trees", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var in struct {
			BaseTree string           `json:"base_tree"`
			Tree     []map[string]any `json:"tree"`
		}
		decode(t, r, &in)
		assert.Equal(t, "head-tree", in.BaseTree)
		f.mu.Lock()
		f.tree = in.Tree
		f.mu.Unlock()
		sha := "new-tree"
		if f.unchanged {
			sha = "head-tree"
		}
		writeJSON(w, map[string]string{"sha": sha})
	})
	mux.HandleFunc("POST /repos/acme/web/git/commits", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		decode(t, r, &f.commit)
		writeJSON(w, map[string]string{"sha": "new-commit"})
	})
	mux.HandleFunc("PATCH /repos/acme/web/git/refs/heads/main", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		decode(t, r, &f.refUpdate)
		writeJSON(w, map[string]any{"object": map[string]string{"sha": "new-commit"}})
	})
	mux.HandleFunc("POST /repos/acme/web/git/refs", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		decode(t, r, &f.refCreate)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"object": map[string]string{"sha": "new-commit"}})
	})
	mux.HandleFunc("POST /repos/acme/web/pulls", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		decode(t, r, &f.pull)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"html_url": "https://github.test/acme/web/pull/7"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeGitHub) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decode(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func newClient(t *testing.T, srv *httptest.Server) *vcs.GitHub {
	t.Helper()
	gh, err := vcs.NewGitHub(vcs.Config{Token: "tok", APIURL: srv.URL},
		vcs.WithHTTPClient(srv.Client()),
		vcs.WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return gh
}

var files = map[string]string{
	"locales/en/common.json": "{\n  \"a\": \"A\"\n}\n",
	"locales/fr/common.json": "{\n  \"a\": \"Á\"\n}\n",
}

func TestNewGitHub(t *testing.T) {
	t.Parallel()

	_, err := vcs.NewGitHub(vcs.Config{})
	require.ErrorIs(t, err, vcs.ErrMissingToken)
}

func TestGitHub_Push(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("commits to the branch", func(t *testing.T) {
		t.Parallel()
		f, srv := newFakeGitHub(t)

		res, err := newClient(t, srv).Push(ctx, vcs.PushRequest{Owner: "acme", Repo: "web", Branch: "main", Files: files})
		require.NoError(t, err)
		assert.Equal(t, &vcs.PushResult{Commit: "new-commit", Branch: "main", Changed: true}, res)

		require.Len(t, f.tree, 2)
		assert.Equal(t, "locales/en/common.json", f.tree[0]["path"])
		assert.Equal(t, "100644", f.tree[0]["mode"])
		assert.Equal(t, "blob-"+files["locales/en/common.json"], f.tree[0]["sha"])
		assert.Equal(t, "locales/fr/common.json", f.tree[1]["path"])

		assert.Equal(t, vcs.DefaultMessage, f.commit["message"])
		assert.Equal(t, []any{"head-commit"}, f.commit["parents"])
		assert.Equal(t, "new-commit", f.refUpdate["sha"])
		assert.Equal(t, false, f.refUpdate["force"])
		assert.Nil(t, f.pull)

		for _, h := range f.auth {
			assert.Equal(t, "Bearer tok", h)
		}
	})

	t.Run("opens a pull request", func(t *testing.T) {
		t.Parallel()
		f, srv := newFakeGitHub(t)

		res, err := newClient(t, srv).Push(ctx, vcs.PushRequest{
			Owner: "acme", Repo: "web", Branch: "main", Files: files,
			Message: "sync", Body: "From localekit", PullRequest: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "localekit-update-20260102-030405", res.Branch)
		assert.Equal(t, "https://github.test/acme/web/pull/7", res.PullRequestURL)
		assert.True(t, res.Changed)

		assert.Equal(t, "refs/heads/localekit-update-20260102-030405", f.refCreate["ref"])
		assert.Equal(t, "new-commit", f.refCreate["sha"])
		assert.Equal(t, "sync", f.pull["title"])
		assert.Equal(t, "main", f.pull["base"])
		assert.Equal(t, res.Branch, f.pull["head"])
		assert.Nil(t, f.refUpdate)
	})

	t.Run("nothing changed", func(t *testing.T) {
		t.Parallel()
		f, srv := newFakeGitHub(t)
		f.unchanged = true

		res, err := newClient(t, srv).Push(ctx, vcs.PushRequest{Owner: "acme", Repo: "web", Branch: "main", Files: files})
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, "head-commit", res.Commit)
		assert.Nil(t, f.commit)
	})

	t.Run("unknown branch", func(t *testing.T) {
		t.Parallel()
		_, srv := newFakeGitHub(t)

		_, err := newClient(t, srv).Push(ctx, vcs.PushRequest{Owner: "acme", Repo: "web", Branch: "develop", Files: files})
		require.ErrorIs(t, err, vcs.ErrNotFound)
	})

	t.Run("invalid requests", func(t *testing.T) {
		t.Parallel()
		_, srv := newFakeGitHub(t)
		gh := newClient(t, srv)

		tests := []struct {
			name string
			req  vcs.PushRequest
		}{
			{name: "no files", req: vcs.PushRequest{Owner: "acme", Repo: "web", Branch: "main"}},
			{name: "no branch", req: vcs.PushRequest{Owner: "acme", Repo: "web", Files: files}},
			{name: "traversal", req: vcs.PushRequest{Owner: "acme", Repo: "web", Branch: "main", Files: map[string]string{"../x.json": "{}"}}},
			{name: "absolute", req: vcs.PushRequest{Owner: "acme", Repo: "web", Branch: "main", Files: map[string]string{"/x.json": "{}"}}},
		}
		for _, tt := range tests {
			_, err := gh.Push(ctx, tt.req)
			require.ErrorIs(t, err, vcs.ErrInvalidRequest, tt.name)
		}
	})
}
