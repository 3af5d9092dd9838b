// Package gitsource syncs a remote content repository into the local content
// directory before a build.
package gitsource

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Sync makes dir track the configured repository branch: clone when dir holds
// no repository, otherwise fetch-free pull of the configured branch. Content
// repos are small, so a shallow-ish single-branch clone is all we need.
func Sync(ctx context.Context, dir string, cfg *config.GitConfig) error {
	repo, err := git.PlainOpen(dir)
	if err == git.ErrRepositoryNotExists {
		return clone(ctx, dir, cfg)
	}
	if err != nil {
		return errors.GitFetchFailed(cfg.URL, err)
	}
	return pull(ctx, repo, cfg)
}

func clone(ctx context.Context, dir string, cfg *config.GitConfig) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.GitFetchFailed(cfg.URL, err)
	}

	slog.Debug("Cloning content repository", slog.String("url", cfg.URL), logfields.Path(dir))
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           cfg.URL,
		ReferenceName: plumbing.ReferenceName("refs/heads/" + cfg.Branch),
		SingleBranch:  true,
	})
	if err != nil {
		return errors.GitFetchFailed(cfg.URL, err)
	}

	if ref, err := repo.Head(); err == nil {
		slog.Info("Content repository cloned",
			slog.String("url", cfg.URL),
			slog.String("commit", ref.Hash().String()[:8]),
			logfields.Path(dir))
	}
	return nil
}

func pull(ctx context.Context, repo *git.Repository, cfg *config.GitConfig) error {
	wt, err := repo.Worktree()
	if err != nil {
		return errors.GitFetchFailed(cfg.URL, err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		ReferenceName: plumbing.ReferenceName("refs/heads/" + cfg.Branch),
		SingleBranch:  true,
	})
	if err == git.NoErrAlreadyUpToDate {
		slog.Debug("Content repository already up to date", slog.String("url", cfg.URL))
		return nil
	}
	if err != nil {
		return errors.GitFetchFailed(cfg.URL, err)
	}

	if ref, err := repo.Head(); err == nil {
		slog.Info("Content repository updated",
			slog.String("url", cfg.URL),
			slog.String("commit", ref.Hash().String()[:8]))
	}
	return nil
}
