// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v68/github"
)

// Staleness compares the local clone's head against the newest commit
// upstream.
type Staleness struct {
	LocalHead  string
	RemoteHead string
}

// Stale reports whether upstream has moved past the local clone.
func (s Staleness) Stale() bool {
	return s.RemoteHead != "" && s.LocalHead != s.RemoteHead
}

// githubAPI abstracts the one GitHub call the staleness check makes.
type githubAPI interface {
	latestCommitSHA(ctx context.Context, owner, repo string) (string, error)
}

type realGitHubAPI struct {
	client *github.Client
}

func (a *realGitHubAPI) latestCommitSHA(ctx context.Context, owner, repo string) (string, error) {
	commits, _, err := a.client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return "", err
	}
	if len(commits) == 0 {
		return "", fmt.Errorf("no commits in %s/%s", owner, repo)
	}
	return commits[0].GetSHA(), nil
}

// newGitHubAPI builds a client, authenticated when GITHUB_TOKEN is set.
// The staleness check only reads public data, so anonymous access works
// within rate limits.
func newGitHubAPI() githubAPI {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return &realGitHubAPI{client: client}
}

// CheckStaleness asks GitHub for the newest commit on the library's
// remote and compares it with the local clone.
func (s *Syncer) CheckStaleness(ctx context.Context) (Staleness, error) {
	return s.checkStaleness(ctx, newGitHubAPI())
}

func (s *Syncer) checkStaleness(ctx context.Context, api githubAPI) (Staleness, error) {
	owner, repo, err := parseGitHubRemote(s.Remote)
	if err != nil {
		return Staleness{}, err
	}
	local, err := s.Head()
	if err != nil {
		return Staleness{}, fmt.Errorf("library: reading local head: %w", err)
	}
	remote, err := api.latestCommitSHA(ctx, owner, repo)
	if err != nil {
		return Staleness{}, fmt.Errorf("library: querying upstream: %w", err)
	}
	return Staleness{LocalHead: local, RemoteHead: remote}, nil
}

// parseGitHubRemote extracts owner and repo from an https or ssh GitHub
// remote URL.
func parseGitHubRemote(remote string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(remote, ".git")
	var path string
	switch {
	case strings.HasPrefix(trimmed, "https://github.com/"):
		path = strings.TrimPrefix(trimmed, "https://github.com/")
	case strings.HasPrefix(trimmed, "git@github.com:"):
		path = strings.TrimPrefix(trimmed, "git@github.com:")
	default:
		return "", "", fmt.Errorf("library: %q is not a GitHub remote", remote)
	}
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("library: cannot parse owner/repo from %q", remote)
	}
	return parts[0], parts[1], nil
}
