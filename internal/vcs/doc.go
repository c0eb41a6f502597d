// Package vcs pushes rendered translation files to a GitHub repository.
//
// A push builds a single commit on top of the target branch through the git
// data API: blobs are created for every file, combined into a tree based on
// the branch head, and committed. The commit either fast-forwards the branch
// or lands on a fresh localekit-update-<timestamp> branch with a pull request
// opened against the base branch. Files not in the push are left as they are
// in the repository.
//
//	gh, err := vcs.NewGitHub(vcs.Config{Token: token})
//	res, err := gh.Push(ctx, vcs.PushRequest{
//		Owner: "acme", Repo: "web", Branch: "main",
//		Files: map[string]string{"locales/en/common.json": "{}\n"},
//	})
package vcs
