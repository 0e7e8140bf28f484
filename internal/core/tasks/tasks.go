// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package tasks defines the value types shared by every taskclone component
// and the narrow interface used to talk to the issue tracker.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// String returns the owner/name form.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether either half of the reference is missing.
func (r RepoRef) IsZero() bool {
	return r.Owner == "" || r.Name == ""
}

// ParseRepoRef parses "owner/name" into a RepoRef.
func ParseRepoRef(s string) (RepoRef, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return RepoRef{}, fmt.Errorf("invalid repository %q: expected 'owner/name'", s)
	}

	owner := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if owner == "" || name == "" {
		return RepoRef{}, fmt.Errorf("invalid repository %q: owner and name cannot be empty", s)
	}

	return RepoRef{Owner: owner, Name: name}, nil
}

// Label is a repository label. Color holds six hex digits without '#'.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Milestone is a repository milestone. Number is only meaningful within
// the repository it was read from.
type Milestone struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	State       string     `json:"state,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// Issue is a source issue as returned by a listing.
type Issue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Body        string     `json:"body,omitempty"`
	Labels      []Label    `json:"labels,omitempty"`
	Milestone   *Milestone `json:"milestone,omitempty"`
	PullRequest bool       `json:"pull_request,omitempty"`
}

// LabelNames returns the names of the issue's labels in listing order.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// Label returns the issue's label with the given name, if present.
func (i *Issue) Label(name string) (Label, bool) {
	for _, l := range i.Labels {
		if l.Name == name {
			return l, true
		}
	}
	return Label{}, false
}

// NewIssue describes an issue to be created in the target repository.
type NewIssue struct {
	Title     string
	Body      string
	Labels    []string
	Milestone *int
}

// IssueFilter selects which source issues are listed.
type IssueFilter struct {
	// Label is required: only issues carrying it are returned.
	Label string
	// State is "open", "closed" or "all".
	State string
}

// Tracker is the subset of the hosting service API that taskclone uses.
type Tracker interface {
	// Authenticate verifies the credentials and returns the user login.
	Authenticate(ctx context.Context) (string, error)
	GetRepository(ctx context.Context, ref RepoRef) (RepoRef, error)
	ListIssues(ctx context.Context, ref RepoRef, filter IssueFilter) ([]Issue, error)
	ListLabels(ctx context.Context, ref RepoRef) ([]Label, error)
	CreateLabel(ctx context.Context, ref RepoRef, label Label) (Label, error)
	ListMilestones(ctx context.Context, ref RepoRef) ([]Milestone, error)
	CreateMilestone(ctx context.Context, ref RepoRef, milestone Milestone) (Milestone, error)
	CreateIssue(ctx context.Context, ref RepoRef, issue NewIssue) (Issue, error)
}
