// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package clone copies labelled issues, their labels and milestones from one
// repository to another.
package clone

import (
	"context"
	"fmt"
	"log"

	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
)

// Session holds an authenticated tracker and the resolved repositories.
type Session struct {
	Tracker tasks.Tracker
	Login   string
	Source  tasks.RepoRef
	Target  tasks.RepoRef
}

// OpenSession authenticates and resolves the source and target repositories.
// Errors wrap tasks.ErrAuthentication or tasks.ErrRepositoryNotFound.
func OpenSession(ctx context.Context, tracker tasks.Tracker, cfg *config.Config) (*Session, error) {
	if tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}

	login, err := tracker.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("error logging in to GitHub: %w", err)
	}
	if cfg.Verbose {
		log.Printf("[session] Authenticated as %s", login)
	}

	source, err := tracker.GetRepository(ctx, cfg.SourceRef())
	if err != nil {
		return nil, fmt.Errorf("error opening the source repository %s: %w", cfg.SourceRef(), err)
	}

	target, err := tracker.GetRepository(ctx, cfg.TargetRef())
	if err != nil {
		return nil, fmt.Errorf("error opening the target repository %s: %w", cfg.TargetRef(), err)
	}

	if cfg.Verbose {
		log.Printf("[session] Source %s, target %s", source, target)
	}

	return &Session{
		Tracker: tracker,
		Login:   login,
		Source:  source,
		Target:  target,
	}, nil
}
