// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package pipeline runs a copy as an ordered list of named steps.
package pipeline

import (
	"context"
	"fmt"

	"github.com/similigh/taskclone/internal/core/config"
)

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic. A non-nil error stops the pipeline.
	Run(ctx *Context) error
}

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Config is the loaded configuration.
	Config *config.Config
}

// NewContext creates a new pipeline context.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	return &Context{Ctx: ctx, Config: cfg}
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order.
// Stops on the first error and before any step once the context is done.
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := ctx.Ctx.Err(); err != nil {
			return err
		}
		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}
