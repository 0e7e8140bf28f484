// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package clone

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
)

// LabelReconciler makes sure labels exist in the target repository. Each
// distinct name is created at most once per run.
type LabelReconciler struct {
	tracker      tasks.Tracker
	target       tasks.RepoRef
	defaultColor string
	dryRun       bool
	verbose      bool

	// known maps label names, case-sensitively, to labels present in the target.
	known   map[string]tasks.Label
	created []string
}

// NewLabelReconciler creates a LabelReconciler for the session's target.
func NewLabelReconciler(s *Session, cfg *config.Config) *LabelReconciler {
	color := cfg.DefaultLabelColor
	if color == "" {
		color = config.DefaultLabelColor
	}

	return &LabelReconciler{
		tracker:      s.Tracker,
		target:       s.Target,
		defaultColor: color,
		dryRun:       cfg.DryRun,
		verbose:      cfg.Verbose,
	}
}

// Seed loads every existing target label into the cache.
func (r *LabelReconciler) Seed(ctx context.Context) error {
	labels, err := r.tracker.ListLabels(ctx, r.target)
	if err != nil {
		return fmt.Errorf("failed to fetch labels of %s: %w", r.target, err)
	}

	r.known = make(map[string]tasks.Label, len(labels))
	for _, l := range labels {
		r.known[l.Name] = l
	}

	if r.verbose {
		log.Printf("[labels] %d labels already exist in %s", len(r.known), r.target)
	}
	return nil
}

// Ensure returns the target label called name, creating it if needed. Color
// and description are copied from template when it is non-nil, otherwise the
// default color is used. Failures wrap tasks.ErrLabelCreationFailed.
func (r *LabelReconciler) Ensure(ctx context.Context, name string, template *tasks.Label) (tasks.Label, error) {
	if r.known == nil {
		if err := r.Seed(ctx); err != nil {
			return tasks.Label{}, tasks.NewItemError(tasks.ErrLabelCreationFailed, "label "+name, err)
		}
	}

	if l, ok := r.known[name]; ok {
		return l, nil
	}

	want := tasks.Label{Name: name, Color: r.defaultColor}
	if template != nil {
		if template.Color != "" {
			want.Color = template.Color
		}
		want.Description = template.Description
	}

	if r.dryRun {
		if r.verbose {
			log.Printf("[labels] DRY RUN: would create label %q (#%s)", name, want.Color)
		}
		r.known[name] = want
		r.created = append(r.created, name)
		return want, nil
	}

	created, err := r.tracker.CreateLabel(ctx, r.target, want)
	if err != nil {
		// GitHub label names are unique regardless of case.
		if existing, ok := r.caseClash(name); ok {
			err = fmt.Errorf("%w (%s already has %q, which differs only in case)", err, r.target, existing)
		}
		return tasks.Label{}, tasks.NewItemError(tasks.ErrLabelCreationFailed, "label "+name, err)
	}

	r.known[name] = created
	r.created = append(r.created, name)
	if r.verbose {
		log.Printf("[labels] Created label %q in %s", name, r.target)
	}
	return created, nil
}

func (r *LabelReconciler) caseClash(name string) (string, bool) {
	for existing := range r.known {
		if existing != name && strings.EqualFold(existing, name) {
			return existing, true
		}
	}
	return "", false
}

// Created returns the names of labels created during this run, in order.
func (r *LabelReconciler) Created() []string {
	return r.created
}
