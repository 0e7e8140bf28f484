// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/similigh/taskclone/internal/clone"
	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
	"github.com/similigh/taskclone/internal/core/tasks/taskstest"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cfgFile = ""
	verbose = false

	cmd := &cobra.Command{Use: "taskclone"}
	addCloneFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	return cmd
}

func TestBuildConfigFromFlags(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newTestCmd(t,
		"--source-owner", "pyconuk", "--source-repo", "conf-2025",
		"--target-owner", "pyconuk", "--target-repo", "conf-2026",
		"--whitelist", "print, design",
		"--clone-milestones",
	)

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Source != "pyconuk/conf-2025" {
		t.Errorf("Expected source pyconuk/conf-2025, got %s", cfg.Source)
	}
	if cfg.Target != "pyconuk/conf-2026" {
		t.Errorf("Expected target pyconuk/conf-2026, got %s", cfg.Target)
	}
	if cfg.Label != config.DefaultLabel {
		t.Errorf("Expected default label %q, got %q", config.DefaultLabel, cfg.Label)
	}
	if !reflect.DeepEqual(cfg.Whitelist, []string{"print", "design"}) {
		t.Errorf("Expected whitelist [print design], got %v", cfg.Whitelist)
	}
	if !cfg.CloneMilestones {
		t.Error("Expected clone milestones to be enabled")
	}
	if cfg.State != "open" {
		t.Errorf("Expected state open, got %s", cfg.State)
	}
}

func TestBuildConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := `
source: pyconuk/conf-2025
target: pyconuk/conf-2026
label: yearly
whitelist: [venue]
clone_milestones: true
`
	path := filepath.Join(dir, "taskclone.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cmd := newTestCmd(t, "--target-repo", "conf-2027", "--state", "ALL")
	cfgFile = path

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Source != "pyconuk/conf-2025" {
		t.Errorf("Expected source from file, got %s", cfg.Source)
	}
	if cfg.Target != "pyconuk/conf-2027" {
		t.Errorf("Expected target repo overridden by flag, got %s", cfg.Target)
	}
	if cfg.Label != "yearly" {
		t.Errorf("Expected label from file, got %s", cfg.Label)
	}
	if !reflect.DeepEqual(cfg.Whitelist, []string{"venue"}) {
		t.Errorf("Expected whitelist [venue], got %v", cfg.Whitelist)
	}
	if !cfg.CloneMilestones {
		t.Error("Expected clone milestones from file")
	}
	if cfg.State != "all" {
		t.Errorf("Expected state all, got %s", cfg.State)
	}
}

func TestBuildConfigErrors(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name    string
		args    []string
		cfgFile string
		wantErr string
	}{
		{
			name:    "missing source",
			args:    []string{"--target-owner", "o", "--target-repo", "r"},
			wantErr: "--source-owner and --source-repo are required",
		},
		{
			name:    "missing target repo",
			args:    []string{"--source-owner", "o", "--source-repo", "r", "--target-owner", "o"},
			wantErr: "--target-owner and --target-repo are required",
		},
		{
			name:    "invalid state",
			args:    []string{"--source-owner", "o", "--source-repo", "a", "--target-owner", "o", "--target-repo", "b", "--state", "draft"},
			wantErr: "state",
		},
		{
			name:    "config file not found",
			args:    []string{"--source-owner", "o", "--source-repo", "a", "--target-owner", "o", "--target-repo", "b"},
			cfgFile: "does-not-exist.yaml",
			wantErr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCmd(t, tt.args...)
			cfgFile = tt.cfgFile

			_, err := buildConfig(cmd)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMergeRepo(t *testing.T) {
	tests := []struct {
		current, owner, name string
		want                 string
	}{
		{"", "", "", ""},
		{"a/b", "", "", "a/b"},
		{"", "a", "b", "a/b"},
		{"a/b", "", "c", "a/c"},
		{"a/b", "x", "", "x/b"},
		{"", "a", "", "a/"},
	}

	for _, tt := range tests {
		got := mergeRepo(tt.current, tt.owner, tt.name)
		if got != tt.want {
			t.Errorf("mergeRepo(%q, %q, %q): expected %q, got %q", tt.current, tt.owner, tt.name, tt.want, got)
		}
	}
}

var (
	srcRef = tasks.RepoRef{Owner: "pyconuk", Name: "conf-2025"}
	dstRef = tasks.RepoRef{Owner: "pyconuk", Name: "conf-2026"}
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Source = srcRef.String()
	cfg.Target = dstRef.String()
	return cfg
}

func TestExecutePlain(t *testing.T) {
	color.NoColor = true

	f := taskstest.NewFakeTracker(srcRef, dstRef)
	f.Repos[srcRef].Issues = []tasks.Issue{
		{Number: 1, Title: "Book venue", Labels: taskstest.Labels("annual", "venue")},
		{Number: 2, Title: "Order badges", Labels: taskstest.Labels("annual", "print")},
		{Number: 3, Title: "Fix typo", Labels: taskstest.Labels("bug")},
	}
	f.FailIssues["Order badges"] = true

	var out bytes.Buffer
	result, err := execute(context.Background(), testConfig(), f, &out, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Copied != 1 || result.Failed != 1 {
		t.Errorf("Expected 1 copied and 1 failed, got %d and %d", result.Copied, result.Failed)
	}

	text := out.String()
	for _, want := range []string{"Creating: Book venue", "Creating: Order badges", "Error: #2 Order badges", "Failed: 1", "Copied 1 tasks."} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Fix typo") {
		t.Errorf("Expected unlabelled issue to be ignored, got:\n%s", text)
	}
}

func TestExecuteDryRun(t *testing.T) {
	color.NoColor = true

	f := taskstest.NewFakeTracker(srcRef, dstRef)
	f.Repos[srcRef].Issues = []tasks.Issue{
		{Number: 1, Title: "Book venue", Labels: taskstest.Labels("annual")},
	}

	cfg := testConfig()
	cfg.DryRun = true

	var out bytes.Buffer
	if _, err := execute(context.Background(), cfg, f, &out, false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(f.CreateIssueCalls) != 0 {
		t.Errorf("Expected no issues created, got %d", len(f.CreateIssueCalls))
	}
	text := out.String()
	if !strings.Contains(text, "Dry run") || !strings.Contains(text, "Would copy 1 tasks.") {
		t.Errorf("Unexpected dry-run output:\n%s", text)
	}
}

func TestExecuteSessionFailure(t *testing.T) {
	f := taskstest.NewFakeTracker(srcRef)

	var out bytes.Buffer
	result, err := execute(context.Background(), testConfig(), f, &out, false)
	if err == nil {
		t.Fatal("Expected error for missing target repository")
	}
	if !errors.Is(err, tasks.ErrRepositoryNotFound) {
		t.Errorf("Expected ErrRepositoryNotFound, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected no result, got %+v", result)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestRunInteractiveCompletes(t *testing.T) {
	f := taskstest.NewFakeTracker(srcRef, dstRef)
	f.Repos[srcRef].Issues = []tasks.Issue{
		{Number: 1, Title: "Book venue", Labels: taskstest.Labels("annual")},
		{Number: 2, Title: "Order badges", Labels: taskstest.Labels("annual")},
	}

	cfg := testConfig()
	s := &clone.Session{Tracker: f, Login: "maintainer", Source: srcRef, Target: dstRef}

	result, err := runInteractive(context.Background(), s, cfg, tea.WithInput(nil), tea.WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Copied != 2 {
		t.Errorf("Expected 2 copied, got %d", result.Copied)
	}
	if len(f.CreateIssueCalls) != 2 {
		t.Errorf("Expected 2 issues created, got %d", len(f.CreateIssueCalls))
	}
}

func TestReportErrorUsesErrorStream(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{Use: "taskclone"}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	if reportError(cmd, nil) {
		t.Error("Expected no error to be reported")
	}
	if !reportError(cmd, errors.New("bad credentials")) {
		t.Error("Expected error to be reported")
	}

	if stderr.String() != "Error: bad credentials\n" {
		t.Errorf("Expected error on stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
}

func TestRunCloneConfigError(t *testing.T) {
	chdir(t, t.TempDir())
	cmd := newTestCmd(t, "--target-owner", "o", "--target-repo", "r")

	err := runClone(cmd)
	if err == nil || !strings.Contains(err.Error(), "--source-owner") {
		t.Errorf("Expected missing source error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if got := out.String(); got != "taskclone v"+Version+"\n" {
		t.Errorf("Expected version line, got %q", got)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
