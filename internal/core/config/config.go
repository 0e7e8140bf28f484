// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package config handles loading taskclone configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/similigh/taskclone/internal/core/tasks"
)

const (
	// DefaultLabel is the selection label used when none is configured.
	DefaultLabel = "annual"

	// DefaultLabelColor is used for labels created without a source template.
	DefaultLabelColor = "cfd3d7"

	// DefaultTokenFile is the token file path, relative to the home directory.
	DefaultTokenFile = "~/.github-token"

	// TokenEnvVar is the environment variable checked before the token file.
	TokenEnvVar = "GITHUB_TOKEN"
)

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Config is the root configuration structure. It is built once at startup
// and passed by pointer to every component.
type Config struct {
	// Source is the repository issues are copied from, in "owner/name" form.
	Source string `yaml:"source,omitempty"`

	// Target is the repository issues are copied to, in "owner/name" form.
	Target string `yaml:"target,omitempty"`

	// Label selects which source issues are copied.
	Label string `yaml:"label,omitempty"`

	// Whitelist limits which extra labels are copied. Empty copies all labels.
	Whitelist []string `yaml:"whitelist,omitempty"`

	// CloneMilestones mirrors source milestones into the target first.
	CloneMilestones bool `yaml:"clone_milestones"`

	// State selects source issues by state: open, closed or all.
	State string `yaml:"state,omitempty"`

	// DefaultLabelColor is used for labels with no source counterpart.
	DefaultLabelColor string `yaml:"default_label_color,omitempty"`

	// TokenFile is read when GITHUB_TOKEN is not set.
	TokenFile string `yaml:"token_file,omitempty"`

	// DryRun logs actions without writing to the target.
	DryRun bool `yaml:"dry_run"`

	// Verbose enables component logging.
	Verbose bool `yaml:"-"`
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// Default returns a configuration with only defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func parseRaw(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".github/taskclone.yaml",
		".github/taskclone.yml",
		".taskclone.yaml",
		".taskclone.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	if c.State == "" {
		c.State = "open"
	}
	if c.DefaultLabelColor == "" {
		c.DefaultLabelColor = DefaultLabelColor
	}
	c.DefaultLabelColor = strings.TrimPrefix(c.DefaultLabelColor, "#")
	if c.TokenFile == "" {
		c.TokenFile = DefaultTokenFile
	}
	c.Whitelist = normalizeList(c.Whitelist)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	c.applyDefaults()

	if _, err := tasks.ParseRepoRef(c.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if _, err := tasks.ParseRepoRef(c.Target); err != nil {
		return fmt.Errorf("target: %w", err)
	}

	switch c.State {
	case "open", "closed", "all":
	default:
		return fmt.Errorf("invalid state %q: expected open, closed or all", c.State)
	}

	if !hexColor.MatchString(c.DefaultLabelColor) {
		return fmt.Errorf("invalid default_label_color %q: expected six hex digits", c.DefaultLabelColor)
	}

	return nil
}

// SourceRef returns the parsed source repository.
func (c *Config) SourceRef() tasks.RepoRef {
	ref, _ := tasks.ParseRepoRef(c.Source)
	return ref
}

// TargetRef returns the parsed target repository.
func (c *Config) TargetRef() tasks.RepoRef {
	ref, _ := tasks.ParseRepoRef(c.Target)
	return ref
}

// HasWhitelist reports whether extra labels are restricted.
func (c *Config) HasWhitelist() bool {
	return len(c.Whitelist) > 0
}

// TokenPath returns TokenFile with a leading "~" expanded to the home directory.
func (c *Config) TokenPath() (string, error) {
	return ExpandHome(c.TokenFile)
}

// ParseWhitelist splits a comma-delimited list, dropping blanks and duplicates.
func ParseWhitelist(s string) []string {
	return normalizeList(strings.Split(s, ","))
}

// ExpandHome expands a leading "~" in path to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func normalizeList(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
