package vcs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAPIURL = "https://api.github.com"
	apiVersion    = "2022-11-28"
	branchPrefix  = "localekit-update-"
	blobWorkers   = 4
)

// Config holds GitHub credentials.
type Config struct {
	Token  string `env:"GITHUB_TOKEN"`
	APIURL string `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
}

// Option configures a GitHub client.
type Option func(*GitHub)

// WithHTTPClient sets the client the token transport wraps.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GitHub) { g.base = c }
}

// WithClock overrides time.Now for branch naming.
func WithClock(now func() time.Time) Option {
	return func(g *GitHub) { g.now = now }
}

// GitHub pushes through the GitHub REST git data API.
type GitHub struct {
	client  *http.Client
	base    *http.Client
	now     func() time.Time
	baseURL string
}

var _ Pusher = (*GitHub)(nil)

// NewGitHub creates a client authenticated with a static token.
func NewGitHub(cfg Config, opts ...Option) (*GitHub, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	g := &GitHub{now: time.Now, baseURL: strings.TrimRight(cfg.APIURL, "/")}
	if g.baseURL == "" {
		g.baseURL = DefaultAPIURL
	}
	for _, opt := range opts {
		opt(g)
	}

	ctx := context.Background()
	if g.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.base)
	}
	g.client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	return g, nil
}

type gitObject struct {
	SHA string `json:"sha"`
}

type gitRef struct {
	Object gitObject `json:"object"`
}

type gitCommit struct {
	Tree gitObject `json:"tree"`
	SHA  string    `json:"sha"`
}

type treeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

type pullRequest struct {
	HTMLURL string `json:"html_url"`
}

// Push commits req.Files on top of req.Branch.
func (g *GitHub) Push(ctx context.Context, req PushRequest) (*PushResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	repo := "/repos/" + url.PathEscape(req.Owner) + "/" + url.PathEscape(req.Repo)

	var head gitRef
	if err := g.do(ctx, http.MethodGet, repo+"/git/ref/heads/"+escapeRef(req.Branch), nil, &head); err != nil {
		return nil, fmt.Errorf("resolve branch %s: %w", req.Branch, err)
	}
	baseSHA := head.Object.SHA

	var base gitCommit
	if err := g.do(ctx, http.MethodGet, repo+"/git/commits/"+baseSHA, nil, &base); err != nil {
		return nil, fmt.Errorf("read head commit: %w", err)
	}

	entries, err := g.createBlobs(ctx, repo, req.Files)
	if err != nil {
		return nil, err
	}

	var tree gitObject
	if err := g.do(ctx, http.MethodPost, repo+"/git/trees", map[string]any{
		"base_tree": base.Tree.SHA,
		"tree":      entries,
	}, &tree); err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}
	if tree.SHA == base.Tree.SHA {
		return &PushResult{Commit: baseSHA, Branch: req.Branch}, nil
	}

	var commit gitObject
	if err := g.do(ctx, http.MethodPost, repo+"/git/commits", map[string]any{
		"message": req.Message,
		"tree":    tree.SHA,
		"parents": []string{baseSHA},
	}, &commit); err != nil {
		return nil, fmt.Errorf("create commit: %w", err)
	}

	res := &PushResult{Commit: commit.SHA, Branch: req.Branch, Changed: true}
	if !req.PullRequest {
		if err := g.do(ctx, http.MethodPatch, repo+"/git/refs/heads/"+escapeRef(req.Branch), map[string]any{
			"sha":   commit.SHA,
			"force": false,
		}, nil); err != nil {
			return nil, fmt.Errorf("update branch %s: %w", req.Branch, err)
		}
		return res, nil
	}

	res.Branch = branchPrefix + g.now().UTC().Format("20060102-150405")
	if err := g.do(ctx, http.MethodPost, repo+"/git/refs", map[string]any{
		"ref": "refs/heads/" + res.Branch,
		"sha": commit.SHA,
	}, nil); err != nil {
		return nil, fmt.Errorf("create branch %s: %w", res.Branch, err)
	}

	var pr pullRequest
	if err := g.do(ctx, http.MethodPost, repo+"/pulls", map[string]any{
		"title": req.Title,
		"body":  req.Body,
		"head":  res.Branch,
		"base":  req.Branch,
	}, &pr); err != nil {
		return nil, fmt.Errorf("open pull request: %w", err)
	}
	res.PullRequestURL = pr.HTMLURL
	return res, nil
}

func (g *GitHub) createBlobs(ctx context.Context, repo string, files map[string]string) ([]treeEntry, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	entries := make([]treeEntry, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(blobWorkers)
	for i, path := range paths {
		eg.Go(func() error {
			var blob gitObject
			if err := g.do(ctx, http.MethodPost, repo+"/git/blobs", map[string]string{
				"content":  files[path],
				"encoding": "utf-8",
			}, &blob); err != nil {
				return fmt.Errorf("create blob %s: %w", path, err)
			}
			entries[i] = treeEntry{Path: path, Mode: "100644", Type: "blob", SHA: blob.SHA}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (g *GitHub) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrRequestFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return errors.Join(statusError(resp.StatusCode),
			fmt.Errorf("%s %s: status=%d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrConflict
	default:
		return ErrRequestFailed
	}
}

func escapeRef(ref string) string {
	parts := strings.Split(ref, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
