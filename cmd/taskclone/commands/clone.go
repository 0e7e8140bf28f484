// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/similigh/taskclone/internal/clone"
	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
	"github.com/similigh/taskclone/internal/credentials"
	"github.com/similigh/taskclone/internal/integrations/github"
	"github.com/similigh/taskclone/internal/tui"
)

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	faintColor = color.New(color.Faint)
	okColor    = color.New(color.FgGreen, color.Bold)
)

// runClone runs a copy from the command line. Per-item failures are
// reported in the summary; only errors that stop the run are returned.
func runClone(cmd *cobra.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	tokenPath, err := cfg.TokenPath()
	if err != nil {
		return err
	}
	token, err := credentials.Resolve(os.LookupEnv, config.TokenEnvVar, tokenPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := execute(ctx, cfg, github.NewClient(ctx, token), cmd.OutOrStdout(), useTUI())
	if result != nil && reportFile != "" {
		if werr := result.WriteJSON(reportFile); werr != nil {
			return werr
		}
	}
	return err
}

// reportError prints err to the command's error stream, keeping stdout for
// progress. It reports whether there was an error.
func reportError(cmd *cobra.Command, err error) bool {
	if err == nil {
		return false
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return true
}

// execute opens the session and runs the copy, printing progress to out.
// Per-item failures are reported but don't make the run fail.
func execute(ctx context.Context, cfg *config.Config, tracker tasks.Tracker, out io.Writer, interactive bool) (*clone.Result, error) {
	session, err := clone.OpenSession(ctx, tracker, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DryRun {
		warnColor.Fprintln(out, "Dry run: nothing will be written to", session.Target)
	}

	var result *clone.Result
	if interactive {
		result, err = runInteractive(ctx, session, cfg)
	} else {
		result, err = clone.Run(ctx, session, cfg, plainPrinter(out, cfg.Verbose))
	}
	if result == nil {
		return nil, err
	}

	printSummary(out, result, interactive)
	return result, err
}

// useTUI reports whether the interactive view should be shown.
func useTUI() bool {
	if verbose || os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// plainPrinter writes one line per notable progress update.
func plainPrinter(out io.Writer, verbose bool) clone.ProgressFunc {
	return func(p clone.Progress) {
		switch p.Status {
		case clone.StatusStarted:
			if p.Kind == clone.KindIssue {
				fmt.Fprintln(out, p.Message)
			} else {
				fmt.Fprintf(out, "Creating milestone: %s\n", p.Item)
			}
		case clone.StatusWarning:
			warnColor.Fprintf(out, "Warning: %s: %s\n", p.Item, p.Message)
		case clone.StatusError:
			errorColor.Fprintf(out, "Error: %s: %s\n", p.Item, p.Message)
		case clone.StatusSkipped:
			faintColor.Fprintf(out, "Skipping %s: %s\n", p.Item, p.Message)
		case clone.StatusSuccess:
			if verbose {
				faintColor.Fprintf(out, "  %s\n", p.Message)
			}
		}
	}
}

// runInteractive drives the bubbletea view from the run's progress updates.
// The view closes once the run is over; quitting it earlier stops the run.
func runInteractive(ctx context.Context, s *clone.Session, cfg *config.Config, opts ...tea.ProgramOption) (*clone.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	statusChan := make(chan tui.StatusMsg)
	done := make(chan struct{})

	var result *clone.Result
	var runErr error

	go func() {
		defer close(done)
		defer close(statusChan)

		result, runErr = clone.Run(ctx, s, cfg, func(p clone.Progress) {
			msg := tui.StatusMsg{Kind: p.Kind, Item: p.Item, Status: p.Status, Message: p.Message}
			select {
			case statusChan <- msg:
			case <-ctx.Done():
			}
		})
	}()

	title := fmt.Sprintf("Copying %q tasks: %s -> %s", cfg.Label, s.Source, s.Target)
	p := tea.NewProgram(tui.NewModel(title, statusChan), opts...)
	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return result, fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := final.(tui.Model); !ok || !m.Finished() {
		cancel()
	}
	<-done

	return result, runErr
}

// printSummary prints the run totals. The per-item errors were already
// printed as they happened unless the interactive view was used.
func printSummary(out io.Writer, r *clone.Result, listErrors bool) {
	if r.MilestonesCreated > 0 {
		fmt.Fprintf(out, "Milestones created: %d\n", r.MilestonesCreated)
	}
	if r.LabelsCreated > 0 {
		fmt.Fprintf(out, "Labels created: %d\n", r.LabelsCreated)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d\n", r.Skipped)
	}
	if r.Failed > 0 {
		errorColor.Fprintf(out, "Failed: %d\n", r.Failed)
	}
	if listErrors {
		for _, e := range r.Errors {
			errorColor.Fprintf(out, "  - %s\n", e)
		}
	}
	okColor.Fprintln(out, r.Summary())
}
