// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/similigh/taskclone/internal/core/config"
)

type recordStep struct {
	name string
	err  error
	log  *[]string
}

func (s recordStep) Name() string { return s.name }

func (s recordStep) Run(ctx *Context) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestPipelineRun(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		errs    map[string]error
		wantRan []string
		wantErr error
	}{
		{
			name:    "all steps run",
			wantRan: []string{"milestones", "labels", "issues"},
		},
		{
			name:    "later error keeps earlier steps",
			errs:    map[string]error{"issues": boom},
			wantRan: []string{"milestones", "labels", "issues"},
			wantErr: boom,
		},
		{
			name:    "error stops the pipeline",
			errs:    map[string]error{"milestones": boom},
			wantRan: []string{"milestones"},
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran []string
			var steps []Step
			for _, name := range []string{"milestones", "labels", "issues"} {
				steps = append(steps, recordStep{name: name, err: tt.errs[name], log: &ran})
			}
			p := New(steps...)

			err := p.Run(NewContext(context.Background(), config.Default()))
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(ran, tt.wantRan) {
				t.Errorf("Expected steps %v, got %v", tt.wantRan, ran)
			}
		})
	}
}

func TestPipelineStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran []string
	p := New(recordStep{name: "issues", log: &ran})

	err := p.Run(NewContext(ctx, config.Default()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(ran) != 0 {
		t.Errorf("Expected no steps to run, got %v", ran)
	}
}
