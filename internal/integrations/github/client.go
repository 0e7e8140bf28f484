// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package github implements tasks.Tracker on top of the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/julieqiu/derrors"

	"github.com/similigh/taskclone/internal/core/tasks"
)

const perPage = 100

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

var _ tasks.Tracker = (*Client)(nil)

// GetRepository resolves a repository. A missing repository, or one the
// token cannot see, yields tasks.ErrRepositoryNotFound.
func (c *Client) GetRepository(ctx context.Context, ref tasks.RepoRef) (_ tasks.RepoRef, err error) {
	defer derrors.Wrap(&err, "GetRepository(%s)", ref)

	repo, _, err := c.client.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		switch statusCode(err) {
		case http.StatusNotFound, http.StatusForbidden:
			return tasks.RepoRef{}, fmt.Errorf("%w: %v", tasks.ErrRepositoryNotFound, err)
		}
		return tasks.RepoRef{}, fmt.Errorf("failed to get repository: %w", err)
	}

	return tasks.RepoRef{
		Owner: repo.GetOwner().GetLogin(),
		Name:  repo.GetName(),
	}, nil
}

// ListIssues lists every issue carrying filter.Label, following pagination.
// Pull requests are returned too, flagged with PullRequest.
func (c *Client) ListIssues(ctx context.Context, ref tasks.RepoRef, filter tasks.IssueFilter) (_ []tasks.Issue, err error) {
	defer derrors.Wrap(&err, "ListIssues(%s, %q)", ref, filter.Label)

	if strings.TrimSpace(filter.Label) == "" {
		return nil, fmt.Errorf("label filter cannot be empty")
	}

	opts := &github.IssueListByRepoOptions{
		State:  filter.State,
		Labels: []string{filter.Label},
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []tasks.Issue
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		for _, issue := range issues {
			all = append(all, convertIssue(issue))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListLabels lists every label defined in the repository.
func (c *Client) ListLabels(ctx context.Context, ref tasks.RepoRef) (_ []tasks.Label, err error) {
	defer derrors.Wrap(&err, "ListLabels(%s)", ref)

	opts := &github.ListOptions{PerPage: perPage}

	var all []tasks.Label
	for {
		labels, resp, err := c.client.Issues.ListLabels(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list labels: %w", err)
		}
		for _, l := range labels {
			all = append(all, convertLabel(l))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// CreateLabel creates a label in the repository.
func (c *Client) CreateLabel(ctx context.Context, ref tasks.RepoRef, label tasks.Label) (_ tasks.Label, err error) {
	defer derrors.Wrap(&err, "CreateLabel(%s, %q)", ref, label.Name)

	if strings.TrimSpace(label.Name) == "" {
		return tasks.Label{}, fmt.Errorf("label name cannot be empty")
	}

	req := &github.Label{
		Name:  github.String(label.Name),
		Color: github.String(strings.TrimPrefix(label.Color, "#")),
	}
	if label.Description != "" {
		req.Description = github.String(label.Description)
	}

	created, _, err := c.client.Issues.CreateLabel(ctx, ref.Owner, ref.Name, req)
	if err != nil {
		return tasks.Label{}, fmt.Errorf("failed to create label: %w", err)
	}

	return convertLabel(created), nil
}

// ListMilestones lists open and closed milestones.
func (c *Client) ListMilestones(ctx context.Context, ref tasks.RepoRef) (_ []tasks.Milestone, err error) {
	defer derrors.Wrap(&err, "ListMilestones(%s)", ref)

	opts := &github.MilestoneListOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []tasks.Milestone
	for {
		milestones, resp, err := c.client.Issues.ListMilestones(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list milestones: %w", err)
		}
		for _, m := range milestones {
			all = append(all, *convertMilestone(m))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// CreateMilestone creates a milestone carrying the title, description and
// due date of m. The new milestone is always open.
func (c *Client) CreateMilestone(ctx context.Context, ref tasks.RepoRef, m tasks.Milestone) (_ tasks.Milestone, err error) {
	defer derrors.Wrap(&err, "CreateMilestone(%s, %q)", ref, m.Title)

	if strings.TrimSpace(m.Title) == "" {
		return tasks.Milestone{}, fmt.Errorf("milestone title cannot be empty")
	}

	req := &github.Milestone{
		Title: github.String(m.Title),
	}
	if m.Description != "" {
		req.Description = github.String(m.Description)
	}
	if m.DueOn != nil {
		req.DueOn = &github.Timestamp{Time: *m.DueOn}
	}

	created, _, err := c.client.Issues.CreateMilestone(ctx, ref.Owner, ref.Name, req)
	if err != nil {
		return tasks.Milestone{}, fmt.Errorf("failed to create milestone: %w", err)
	}

	return *convertMilestone(created), nil
}

// CreateIssue creates an issue in the repository.
func (c *Client) CreateIssue(ctx context.Context, ref tasks.RepoRef, issue tasks.NewIssue) (_ tasks.Issue, err error) {
	defer derrors.Wrap(&err, "CreateIssue(%s, %q)", ref, issue.Title)

	if strings.TrimSpace(issue.Title) == "" {
		return tasks.Issue{}, fmt.Errorf("issue title cannot be empty")
	}

	labels := issue.Labels
	if labels == nil {
		labels = []string{}
	}

	req := &github.IssueRequest{
		Title:     github.String(issue.Title),
		Labels:    &labels,
		Milestone: issue.Milestone,
	}
	if issue.Body != "" {
		req.Body = github.String(issue.Body)
	}

	created, _, err := c.client.Issues.Create(ctx, ref.Owner, ref.Name, req)
	if err != nil {
		return tasks.Issue{}, fmt.Errorf("failed to create issue: %w", err)
	}

	return convertIssue(created), nil
}

func convertIssue(issue *github.Issue) tasks.Issue {
	out := tasks.Issue{
		Number:      issue.GetNumber(),
		Title:       issue.GetTitle(),
		Body:        issue.GetBody(),
		Milestone:   convertMilestone(issue.Milestone),
		PullRequest: issue.IsPullRequest(),
	}
	for _, l := range issue.Labels {
		out.Labels = append(out.Labels, convertLabel(l))
	}
	return out
}

func convertLabel(label *github.Label) tasks.Label {
	return tasks.Label{
		Name:        label.GetName(),
		Color:       label.GetColor(),
		Description: label.GetDescription(),
	}
}

func convertMilestone(m *github.Milestone) *tasks.Milestone {
	if m == nil {
		return nil
	}

	out := &tasks.Milestone{
		Number:      m.GetNumber(),
		Title:       m.GetTitle(),
		Description: m.GetDescription(),
		State:       m.GetState(),
	}
	if m.DueOn != nil {
		due := m.DueOn.Time
		out.DueOn = &due
	}
	return out
}
