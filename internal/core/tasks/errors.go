// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package tasks

import (
	"errors"
	"fmt"
)

// Pre-flight failures. Any of these ends the run.
var (
	ErrCredentialMissing  = errors.New("no GitHub token could be found; create ~/.github-token containing it, or set it in the GITHUB_TOKEN environment variable")
	ErrAuthentication     = errors.New("authentication failed")
	ErrRepositoryNotFound = errors.New("repository not found")
)

// Per-item failures. These are recorded and the batch continues.
var (
	ErrMilestoneCreationFailed = errors.New("milestone creation failed")
	ErrLabelCreationFailed     = errors.New("label creation failed")
	ErrIssueCreationFailed     = errors.New("issue creation failed")
)

// ItemError reports a failure tied to a single milestone, label or issue.
type ItemError struct {
	// Kind is one of the per-item sentinel errors above.
	Kind error
	// Item identifies the failing item, e.g. "#12 Book venue" or "label venue".
	Item string
	Err  error
}

// NewItemError wraps err as a per-item failure of the given kind.
func NewItemError(kind error, item string, err error) *ItemError {
	return &ItemError{Kind: kind, Item: item, Err: err}
}

func (e *ItemError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Item, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Item, e.Kind, e.Err)
}

// Is matches the error against its Kind so errors.Is works on the sentinel.
func (e *ItemError) Is(target error) bool {
	return e.Kind == target
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
