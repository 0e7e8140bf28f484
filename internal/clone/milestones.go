// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package clone

import (
	"context"
	"fmt"
	"log"

	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
)

// MilestoneMap maps milestone titles to target milestone numbers.
type MilestoneMap map[string]int

// Lookup returns the target number for title, if known.
func (m MilestoneMap) Lookup(title string) (int, bool) {
	n, ok := m[title]
	return n, ok
}

// MilestoneReconciler mirrors source milestones into the target repository.
// Titles are matched exactly.
type MilestoneReconciler struct {
	tracker  tasks.Tracker
	source   tasks.RepoRef
	target   tasks.RepoRef
	dryRun   bool
	verbose  bool
	progress ProgressFunc
}

// NewMilestoneReconciler creates a MilestoneReconciler for the session.
func NewMilestoneReconciler(s *Session, cfg *config.Config, progress ProgressFunc) *MilestoneReconciler {
	return &MilestoneReconciler{
		tracker:  s.Tracker,
		source:   s.Source,
		target:   s.Target,
		dryRun:   cfg.DryRun,
		verbose:  cfg.Verbose,
		progress: progress,
	}
}

// Reconcile creates every source milestone whose title is missing from the
// target and returns the title to number mapping for the target. A failed
// creation is recorded in result and does not stop reconciliation. The
// returned error is non-nil only when a listing fails, in which case the map
// holds whatever was gathered.
func (r *MilestoneReconciler) Reconcile(ctx context.Context, result *Result) (MilestoneMap, error) {
	mapping := MilestoneMap{}

	existing, err := r.tracker.ListMilestones(ctx, r.target)
	if err != nil {
		return mapping, fmt.Errorf("failed to fetch milestones of %s: %w", r.target, err)
	}
	for _, m := range existing {
		mapping[m.Title] = m.Number
	}

	sourceMilestones, err := r.tracker.ListMilestones(ctx, r.source)
	if err != nil {
		return mapping, fmt.Errorf("failed to fetch milestones of %s: %w", r.source, err)
	}

	if r.verbose {
		log.Printf("[milestones] %d in source, %d already in target", len(sourceMilestones), len(existing))
	}

	planned := make(map[string]bool)
	for _, m := range sourceMilestones {
		if err := ctx.Err(); err != nil {
			return mapping, err
		}
		if _, ok := mapping[m.Title]; ok || planned[m.Title] {
			continue
		}
		planned[m.Title] = true

		detail := Detail{Kind: KindMilestone, Number: m.Number, Title: m.Title}
		r.progress.send(KindMilestone, m.Title, StatusStarted, "Creating milestone...")

		if r.dryRun {
			detail.Action = ActionWouldCreate
			detail.Reason = "DRY RUN: would create milestone"
			result.record(detail)
			r.progress.send(KindMilestone, m.Title, StatusSuccess, detail.Reason)
			continue
		}

		created, err := r.tracker.CreateMilestone(ctx, r.target, m)
		if err != nil {
			itemErr := tasks.NewItemError(tasks.ErrMilestoneCreationFailed, fmt.Sprintf("milestone %q", m.Title), err)
			result.fail(detail, itemErr)
			r.progress.send(KindMilestone, m.Title, StatusError, itemErr.Error())
			if r.verbose {
				log.Printf("[milestones] Warning: %v", itemErr)
			}
			continue
		}

		mapping[m.Title] = created.Number
		result.MilestonesCreated++
		detail.Action = ActionCreated
		detail.Created = created.Number
		result.record(detail)
		r.progress.send(KindMilestone, m.Title, StatusSuccess, fmt.Sprintf("Created milestone %d", created.Number))
		if r.verbose {
			log.Printf("[milestones] Created %q as milestone %d", m.Title, created.Number)
		}
	}

	return mapping, nil
}
