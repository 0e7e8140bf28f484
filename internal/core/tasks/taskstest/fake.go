// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package taskstest provides an in-memory tasks.Tracker for tests.
package taskstest

import (
	"context"
	"errors"
	"fmt"

	"github.com/similigh/taskclone/internal/core/tasks"
)

// Repo is an in-memory repository.
type Repo struct {
	Issues     []tasks.Issue
	Labels     []tasks.Label
	Milestones []tasks.Milestone
}

// FakeTracker is an in-memory tasks.Tracker with call counters and
// failure injection.
type FakeTracker struct {
	Repos map[tasks.RepoRef]*Repo

	AuthErr        error
	ListIssuesErr  error
	FailLabels     map[string]bool
	FailMilestones map[string]bool
	FailIssues     map[string]bool

	CreateLabelCalls     []string
	CreateMilestoneCalls []string
	CreateIssueCalls     []tasks.NewIssue
	ListIssuesFilter     tasks.IssueFilter
}

// NewFakeTracker returns a FakeTracker holding an empty repository for
// each ref.
func NewFakeTracker(refs ...tasks.RepoRef) *FakeTracker {
	repos := make(map[tasks.RepoRef]*Repo, len(refs))
	for _, ref := range refs {
		repos[ref] = &Repo{}
	}
	return &FakeTracker{
		Repos:          repos,
		FailLabels:     map[string]bool{},
		FailMilestones: map[string]bool{},
		FailIssues:     map[string]bool{},
	}
}

var _ tasks.Tracker = (*FakeTracker)(nil)

func (f *FakeTracker) repo(ref tasks.RepoRef) (*Repo, error) {
	r, ok := f.Repos[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tasks.ErrRepositoryNotFound, ref)
	}
	return r, nil
}

func (f *FakeTracker) Authenticate(ctx context.Context) (string, error) {
	if f.AuthErr != nil {
		return "", f.AuthErr
	}
	return "maintainer", nil
}

func (f *FakeTracker) GetRepository(ctx context.Context, ref tasks.RepoRef) (tasks.RepoRef, error) {
	if _, err := f.repo(ref); err != nil {
		return tasks.RepoRef{}, err
	}
	return ref, nil
}

func (f *FakeTracker) ListIssues(ctx context.Context, ref tasks.RepoRef, filter tasks.IssueFilter) ([]tasks.Issue, error) {
	f.ListIssuesFilter = filter
	if f.ListIssuesErr != nil {
		return nil, f.ListIssuesErr
	}
	r, err := f.repo(ref)
	if err != nil {
		return nil, err
	}

	var out []tasks.Issue
	for _, issue := range r.Issues {
		if _, ok := issue.Label(filter.Label); ok {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (f *FakeTracker) ListLabels(ctx context.Context, ref tasks.RepoRef) ([]tasks.Label, error) {
	r, err := f.repo(ref)
	if err != nil {
		return nil, err
	}
	return append([]tasks.Label(nil), r.Labels...), nil
}

func (f *FakeTracker) CreateLabel(ctx context.Context, ref tasks.RepoRef, label tasks.Label) (tasks.Label, error) {
	f.CreateLabelCalls = append(f.CreateLabelCalls, label.Name)
	if f.FailLabels[label.Name] {
		return tasks.Label{}, errors.New("422 Validation Failed")
	}
	r, err := f.repo(ref)
	if err != nil {
		return tasks.Label{}, err
	}
	for _, l := range r.Labels {
		if l.Name == label.Name {
			return tasks.Label{}, errors.New("422 already_exists")
		}
	}
	r.Labels = append(r.Labels, label)
	return label, nil
}

func (f *FakeTracker) ListMilestones(ctx context.Context, ref tasks.RepoRef) ([]tasks.Milestone, error) {
	r, err := f.repo(ref)
	if err != nil {
		return nil, err
	}
	return append([]tasks.Milestone(nil), r.Milestones...), nil
}

func (f *FakeTracker) CreateMilestone(ctx context.Context, ref tasks.RepoRef, m tasks.Milestone) (tasks.Milestone, error) {
	f.CreateMilestoneCalls = append(f.CreateMilestoneCalls, m.Title)
	if f.FailMilestones[m.Title] {
		return tasks.Milestone{}, errors.New("422 Validation Failed")
	}
	r, err := f.repo(ref)
	if err != nil {
		return tasks.Milestone{}, err
	}
	created := tasks.Milestone{
		Number:      len(r.Milestones) + 1,
		Title:       m.Title,
		Description: m.Description,
		DueOn:       m.DueOn,
		State:       "open",
	}
	r.Milestones = append(r.Milestones, created)
	return created, nil
}

func (f *FakeTracker) CreateIssue(ctx context.Context, ref tasks.RepoRef, issue tasks.NewIssue) (tasks.Issue, error) {
	f.CreateIssueCalls = append(f.CreateIssueCalls, issue)
	if f.FailIssues[issue.Title] {
		return tasks.Issue{}, errors.New("502 Bad Gateway")
	}
	r, err := f.repo(ref)
	if err != nil {
		return tasks.Issue{}, err
	}

	created := tasks.Issue{
		Number: len(r.Issues) + 1,
		Title:  issue.Title,
		Body:   issue.Body,
	}
	for _, name := range issue.Labels {
		created.Labels = append(created.Labels, tasks.Label{Name: name})
	}
	if issue.Milestone != nil {
		for _, m := range r.Milestones {
			if m.Number == *issue.Milestone {
				m := m
				created.Milestone = &m
			}
		}
	}
	r.Issues = append(r.Issues, created)
	return created, nil
}

// Labels builds labels with the given names and no color.
func Labels(names ...string) []tasks.Label {
	out := make([]tasks.Label, 0, len(names))
	for _, n := range names {
		out = append(out, tasks.Label{Name: n})
	}
	return out
}
