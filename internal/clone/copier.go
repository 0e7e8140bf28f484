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

// Copier creates target issues from the source issues carrying the
// selection label.
type Copier struct {
	tracker   tasks.Tracker
	source    tasks.RepoRef
	target    tasks.RepoRef
	label     string
	state     string
	whitelist []string
	labels    *LabelReconciler
	dryRun    bool
	verbose   bool
	progress  ProgressFunc
}

// NewCopier creates a Copier for the session.
func NewCopier(s *Session, cfg *config.Config, labels *LabelReconciler, progress ProgressFunc) *Copier {
	var whitelist []string
	if cfg.HasWhitelist() {
		whitelist = cfg.Whitelist
	}

	return &Copier{
		tracker:   s.Tracker,
		source:    s.Source,
		target:    s.Target,
		label:     cfg.Label,
		state:     cfg.State,
		whitelist: whitelist,
		labels:    labels,
		dryRun:    cfg.DryRun,
		verbose:   cfg.Verbose,
		progress:  progress,
	}
}

// ResolveLabels returns the labels to put on the copy of issue. With no
// whitelist every source label is kept. Otherwise only the selection label
// and whitelisted labels the issue already has are kept. The selection label
// always comes first and is always present.
func ResolveLabels(issue *tasks.Issue, selection string, whitelist []string) []string {
	allowed := make(map[string]bool, len(whitelist))
	for _, w := range whitelist {
		allowed[w] = true
	}

	out := []string{selection}
	seen := map[string]bool{selection: true}
	for _, l := range issue.Labels {
		if seen[l.Name] {
			continue
		}
		if len(whitelist) > 0 && !allowed[l.Name] {
			continue
		}
		seen[l.Name] = true
		out = append(out, l.Name)
	}
	return out
}

// CopyAll copies every matching source issue, in listing order. milestones
// is nil when milestone cloning is off. Per-issue failures are recorded in
// result and the batch continues; the returned error is non-nil only when
// the source listing fails or ctx is cancelled.
func (c *Copier) CopyAll(ctx context.Context, milestones MilestoneMap, result *Result) (int, error) {
	issues, err := c.tracker.ListIssues(ctx, c.source, tasks.IssueFilter{Label: c.label, State: c.state})
	if err != nil {
		return result.Copied, fmt.Errorf("failed to fetch issues labelled %q from %s: %w", c.label, c.source, err)
	}

	if c.verbose {
		log.Printf("[issue-copier] Found %d %s issues labelled %q in %s", len(issues), c.state, c.label, c.source)
	}

	attempted := make(map[int]bool, len(issues))
	for i := range issues {
		if err := ctx.Err(); err != nil {
			return result.Copied, err
		}

		issue := &issues[i]
		if attempted[issue.Number] {
			continue
		}
		attempted[issue.Number] = true

		c.copyOne(ctx, issue, milestones, result)
	}

	return result.Copied, nil
}

func (c *Copier) copyOne(ctx context.Context, issue *tasks.Issue, milestones MilestoneMap, result *Result) {
	item := fmt.Sprintf("#%d %s", issue.Number, issue.Title)
	detail := Detail{Kind: KindIssue, Number: issue.Number, Title: issue.Title}

	if issue.PullRequest {
		detail.Action = ActionSkipped
		detail.Reason = "pull request"
		result.Skipped++
		result.record(detail)
		c.progress.send(KindIssue, item, StatusSkipped, "Pull requests are not copied")
		return
	}

	result.Matched++
	c.progress.send(KindIssue, item, StatusStarted, "Creating: "+issue.Title)

	labels := ResolveLabels(issue, c.label, c.whitelist)
	for _, name := range labels {
		var template *tasks.Label
		if l, ok := issue.Label(name); ok {
			template = &l
		}
		if _, err := c.labels.Ensure(ctx, name, template); err != nil {
			result.Failed++
			result.fail(detail, fmt.Errorf("%s: %w", item, err))
			c.progress.send(KindIssue, item, StatusError, err.Error())
			if c.verbose {
				log.Printf("[issue-copier] Warning: skipping %s: %v", item, err)
			}
			return
		}
	}

	var milestone *int
	if milestones != nil && issue.Milestone != nil {
		if n, ok := milestones.Lookup(issue.Milestone.Title); ok {
			milestone = &n
		} else {
			msg := fmt.Sprintf("milestone %q not found in %s; creating without milestone", issue.Milestone.Title, c.target)
			c.progress.send(KindIssue, item, StatusWarning, msg)
			if c.verbose {
				log.Printf("[issue-copier] %s: %s", item, msg)
			}
		}
	}

	if c.dryRun {
		detail.Action = ActionWouldCreate
		detail.Reason = fmt.Sprintf("DRY RUN: would create with labels %v", labels)
		result.Copied++
		result.record(detail)
		c.progress.send(KindIssue, item, StatusSuccess, detail.Reason)
		return
	}

	created, err := c.tracker.CreateIssue(ctx, c.target, tasks.NewIssue{
		Title:     issue.Title,
		Body:      issue.Body,
		Labels:    labels,
		Milestone: milestone,
	})
	if err != nil {
		itemErr := tasks.NewItemError(tasks.ErrIssueCreationFailed, item, err)
		result.Failed++
		result.fail(detail, itemErr)
		c.progress.send(KindIssue, item, StatusError, itemErr.Error())
		if c.verbose {
			log.Printf("[issue-copier] Warning: %v", itemErr)
		}
		return
	}

	result.Copied++
	detail.Action = ActionCreated
	detail.Created = created.Number
	result.record(detail)
	c.progress.send(KindIssue, item, StatusSuccess, fmt.Sprintf("Created %s#%d", c.target, created.Number))
	if c.verbose {
		log.Printf("[issue-copier] Created %s as %s#%d", item, c.target, created.Number)
	}
}
