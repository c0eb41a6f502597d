package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Pusher writes files to a repository.
type Pusher interface {
	Push(ctx context.Context, req PushRequest) (*PushResult, error)
}

// PushRequest describes one push.
type PushRequest struct {
	// Files maps repository paths to their full content.
	Files   map[string]string
	Owner   string
	Repo    string
	Branch  string
	Message string
	// Title and Body are used for the pull request. Title defaults to Message.
	Title       string
	Body        string
	PullRequest bool
}

// PushResult describes what a push did.
type PushResult struct {
	// Commit is the new commit SHA, or the unchanged head when nothing changed.
	Commit         string `json:"commit"`
	Branch         string `json:"branch"`
	PullRequestURL string `json:"pullRequestUrl,omitempty"`
	Changed        bool   `json:"changed"`
}

// DefaultMessage is used when a push has no commit message.
const DefaultMessage = "chore(i18n): update translations"

func (r *PushRequest) validate() error {
	switch {
	case r.Owner == "" || r.Repo == "" || r.Branch == "":
		return errors.Join(ErrInvalidRequest, errors.New("owner, repo and branch are required"))
	case len(r.Files) == 0:
		return errors.Join(ErrInvalidRequest, errors.New("no files to push"))
	}
	for path := range r.Files {
		if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
			return errors.Join(ErrInvalidRequest, fmt.Errorf("bad path %q", path))
		}
	}
	if r.Message == "" {
		r.Message = DefaultMessage
	}
	if r.Title == "" {
		r.Title = r.Message
	}
	return nil
}
