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
	"github.com/similigh/taskclone/internal/core/pipeline"
)

// run is the state shared by the steps of one copy.
type run struct {
	session    *Session
	progress   ProgressFunc
	result     *Result
	milestones MilestoneMap
	labels     *LabelReconciler
}

// milestonesStep mirrors source milestones into the target.
type milestonesStep struct{ *run }

func (s milestonesStep) Name() string { return "clone_milestones" }

func (s milestonesStep) Run(ctx *pipeline.Context) error {
	if !ctx.Config.CloneMilestones {
		return nil
	}

	reconciler := NewMilestoneReconciler(s.session, ctx.Config, s.progress)
	milestones, err := reconciler.Reconcile(ctx.Ctx, s.result)
	s.milestones = milestones
	if err != nil {
		if ctx.Ctx.Err() != nil {
			return ctx.Ctx.Err()
		}
		// Issues are still copied, without the milestones that could not be mapped.
		s.result.Errors = append(s.result.Errors, err.Error())
		s.progress.send(KindMilestone, "milestones", StatusError, err.Error())
		if ctx.Config.Verbose {
			log.Printf("[milestones] Warning: %v", err)
		}
	}
	return nil
}

// labelsStep loads the target's existing labels.
type labelsStep struct{ *run }

func (s labelsStep) Name() string { return "seed_labels" }

func (s labelsStep) Run(ctx *pipeline.Context) error {
	s.labels = NewLabelReconciler(s.session, ctx.Config)
	return s.labels.Seed(ctx.Ctx)
}

// issuesStep copies the selected issues.
type issuesStep struct{ *run }

func (s issuesStep) Name() string { return "copy_issues" }

func (s issuesStep) Run(ctx *pipeline.Context) error {
	copier := NewCopier(s.session, ctx.Config, s.labels, s.progress)
	_, err := copier.CopyAll(ctx.Ctx, s.milestones, s.result)
	s.result.LabelsCreated = len(s.labels.Created())
	if err != nil {
		return fmt.Errorf("failed to copy issues: %w", err)
	}
	return nil
}

// Run reconciles milestones when enabled, then copies the issues. The
// returned error is non-nil when the run could not get going or was
// cancelled; per-item failures only show up in the result.
func Run(ctx context.Context, s *Session, cfg *config.Config, progress ProgressFunc) (*Result, error) {
	r := &run{
		session:  s,
		progress: progress,
		result:   NewResult(s, cfg.Label, cfg.DryRun),
	}

	p := pipeline.New(milestonesStep{r}, labelsStep{r}, issuesStep{r})
	if err := p.Run(pipeline.NewContext(ctx, cfg)); err != nil {
		return r.result, err
	}
	return r.result, nil
}
