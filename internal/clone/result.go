// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package clone

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Detail actions.
const (
	ActionCreated     = "created"
	ActionWouldCreate = "would_create"
	ActionSkipped     = "skipped"
	ActionError       = "error"
)

// Detail kinds.
const (
	KindIssue     = "issue"
	KindMilestone = "milestone"
)

// Result holds the summary of a copy run.
type Result struct {
	RunID             string   `json:"run_id"`
	Source            string   `json:"source"`
	Target            string   `json:"target"`
	Label             string   `json:"label"`
	DryRun            bool     `json:"dry_run,omitempty"`
	Matched           int      `json:"matched"`
	Copied            int      `json:"copied"`
	Skipped           int      `json:"skipped"`
	Failed            int      `json:"failed"`
	MilestonesCreated int      `json:"milestones_created"`
	LabelsCreated     int      `json:"labels_created"`
	Errors            []string `json:"errors,omitempty"`
	Details           []Detail `json:"details,omitempty"`
}

// Detail records the outcome for a single issue or milestone.
type Detail struct {
	Kind   string `json:"kind"`
	Number int    `json:"number,omitempty"`
	Title  string `json:"title"`
	Action string `json:"action"`
	// Created is the number assigned in the target repository.
	Created int    `json:"created,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// NewResult creates an empty result for a session.
func NewResult(s *Session, label string, dryRun bool) *Result {
	return &Result{
		RunID:  uuid.NewString(),
		Source: s.Source.String(),
		Target: s.Target.String(),
		Label:  label,
		DryRun: dryRun,
	}
}

func (r *Result) record(d Detail) {
	r.Details = append(r.Details, d)
}

func (r *Result) fail(d Detail, err error) {
	d.Action = ActionError
	d.Reason = err.Error()
	r.Errors = append(r.Errors, err.Error())
	r.Details = append(r.Details, d)
}

// Summary returns the final line printed after a run.
func (r *Result) Summary() string {
	if r.DryRun {
		return fmt.Sprintf("Would copy %d tasks.", r.Copied)
	}
	return fmt.Sprintf("Copied %d tasks.", r.Copied)
}

// WriteJSON writes the result as indented JSON to path.
func (r *Result) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
