// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
)

// SyncAction describes what Sync did to the local clone.
type SyncAction string

const (
	ActionCloned   SyncAction = "cloned"
	ActionUpdated  SyncAction = "updated"
	ActionUpToDate SyncAction = "up to date"
)

// SyncResult reports the outcome of a sync.
type SyncResult struct {
	Action SyncAction
	// Head is the commit hash the clone sits at after the sync.
	Head string
}

// gitBackend abstracts the go-git operations Sync needs, so tests can
// run without network or a real repository.
type gitBackend interface {
	Clone(ctx context.Context, path, remote string) (head string, err error)
	Pull(ctx context.Context, path string) (head string, upToDate bool, err error)
	Head(path string) (string, error)
}

// Syncer keeps the local parts library clone in step with its remote.
type Syncer struct {
	Remote string
	Path   string

	backend gitBackend
}

// NewSyncer returns a Syncer cloning remote into path.
func NewSyncer(remote, path string) *Syncer {
	return &Syncer{Remote: remote, Path: path, backend: realGit{}}
}

// Sync clones the library if path does not exist yet, and pulls
// otherwise. The library is large, so clones are shallow.
func (s *Syncer) Sync(ctx context.Context) (SyncResult, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, os.ErrNotExist) {
		slog.Info("cloning parts library", "remote", s.Remote, "path", s.Path)
		head, err := s.backend.Clone(ctx, s.Path, s.Remote)
		if err != nil {
			return SyncResult{}, fmt.Errorf("library: clone failed: %w", err)
		}
		return SyncResult{Action: ActionCloned, Head: head}, nil
	}

	slog.Debug("pulling parts library", "path", s.Path)
	head, upToDate, err := s.backend.Pull(ctx, s.Path)
	if err != nil {
		return SyncResult{}, fmt.Errorf("library: pull failed: %w", err)
	}
	if upToDate {
		return SyncResult{Action: ActionUpToDate, Head: head}, nil
	}
	return SyncResult{Action: ActionUpdated, Head: head}, nil
}

// Head returns the commit hash of the local clone without touching the
// network.
func (s *Syncer) Head() (string, error) {
	return s.backend.Head(s.Path)
}

// realGit is the production gitBackend on go-git.
type realGit struct{}

func (realGit) Clone(ctx context.Context, path, remote string) (string, error) {
	repo, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:          remote,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		return "", err
	}
	return headHash(repo)
}

func (realGit) Pull(ctx context.Context, path string) (head string, upToDate bool, err error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false, err
	}
	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin", Depth: 1})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		h, herr := headHash(repo)
		return h, true, herr
	}
	if err != nil {
		return "", false, err
	}
	h, herr := headHash(repo)
	return h, false, herr
}

func (realGit) Head(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", err
	}
	return headHash(repo)
}

func headHash(repo *git.Repository) (string, error) {
	ref, err := repo.Head()
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}
