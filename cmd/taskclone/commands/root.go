// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package commands implements the taskclone command line.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
)

var (
	cfgFile string
	verbose bool

	sourceRepo      string
	sourceOwner     string
	targetRepo      string
	targetOwner     string
	selectLabel     string
	cloneMilestones bool
	whitelist       string
	issueState      string
	dryRun          bool
	reportFile      string
)

// rootCmd copies the issues.
var rootCmd = &cobra.Command{
	Use:   "taskclone",
	Short: "Copy labelled GitHub issues from one repository to another",
	Long: `Copy tasks (issues) carrying a label from one GitHub repository to another.

This is intended for projects that manage recurring events, where a fixed
set of tasks is repeated every year. Titles and bodies are copied; comments
are not. Labels missing from the target are created, and milestones can be
cloned too.

Usage:
  taskclone --source-owner org --source-repo event-2025 \
            --target-owner org --target-repo event-2026 \
            [--label annual] [--whitelist venue,catering] [--clone-milestones]

Environment variables:
  GITHUB_TOKEN   Token with issues:write permission on the target. When unset,
                 the first line of ~/.github-token is used.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if reportError(cmd, runClone(cmd)) {
			os.Exit(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/taskclone.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every API step")

	addCloneFlags(rootCmd)
}

func addCloneFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&sourceRepo, "source-repo", "", "The source repo name")
	flags.StringVar(&sourceOwner, "source-owner", "", "The source repo owner name (owner may be an org or user)")
	flags.StringVar(&targetRepo, "target-repo", "", "The target repo name")
	flags.StringVar(&targetOwner, "target-owner", "", "The target repo owner name (owner may be an org or user)")
	flags.StringVar(&selectLabel, "label", config.DefaultLabel, "A label to limit copying to")
	flags.BoolVar(&cloneMilestones, "clone-milestones", false, "Clone milestones from the source repo first")
	flags.StringVar(&whitelist, "whitelist", "", "Comma-separated labels to copy besides --label (default: copy all labels)")
	flags.StringVar(&issueState, "state", "open", "Which source issues to copy: open, closed or all")
	flags.BoolVar(&dryRun, "dry-run", false, "Log actions without writing to the target repo")
	flags.StringVar(&reportFile, "report", "", "Write a JSON report of the run to this path")
}

// buildConfig loads the config file, if any, and applies explicitly set flags on top.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	path := config.FindConfigPath(cfgFile)
	switch {
	case cfgFile != "" && path == "":
		return nil, fmt.Errorf("config file %s not found", cfgFile)
	case path != "":
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if verbose {
			fmt.Printf("Loaded config from %s\n", path)
		}
		cfg = loaded
	default:
		cfg = config.Default()
	}

	flags := cmd.Flags()
	cfg.Source = mergeRepo(cfg.Source, flagValue(cmd, "source-owner", sourceOwner), flagValue(cmd, "source-repo", sourceRepo))
	cfg.Target = mergeRepo(cfg.Target, flagValue(cmd, "target-owner", targetOwner), flagValue(cmd, "target-repo", targetRepo))

	if flags.Changed("label") {
		cfg.Label = strings.TrimSpace(selectLabel)
	}
	if flags.Changed("whitelist") {
		cfg.Whitelist = config.ParseWhitelist(whitelist)
	}
	if flags.Changed("clone-milestones") {
		cfg.CloneMilestones = cloneMilestones
	}
	if flags.Changed("state") {
		cfg.State = strings.ToLower(strings.TrimSpace(issueState))
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	cfg.Verbose = verbose

	if cfg.Source == "" || strings.HasPrefix(cfg.Source, "/") || strings.HasSuffix(cfg.Source, "/") {
		return nil, fmt.Errorf("--source-owner and --source-repo are required (or set source in the config file)")
	}
	if cfg.Target == "" || strings.HasPrefix(cfg.Target, "/") || strings.HasSuffix(cfg.Target, "/") {
		return nil, fmt.Errorf("--target-owner and --target-repo are required (or set target in the config file)")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// flagValue returns value when the flag was set on the command line, else "".
func flagValue(cmd *cobra.Command, name, value string) string {
	if !cmd.Flags().Changed(name) {
		return ""
	}
	return strings.TrimSpace(value)
}

// mergeRepo overrides the owner and/or name of an "owner/name" string.
func mergeRepo(current, owner, name string) string {
	if owner == "" && name == "" {
		return current
	}

	var ref tasks.RepoRef
	if parsed, err := tasks.ParseRepoRef(current); err == nil {
		ref = parsed
	}
	if owner != "" {
		ref.Owner = owner
	}
	if name != "" {
		ref.Name = name
	}
	return ref.Owner + "/" + ref.Name
}
