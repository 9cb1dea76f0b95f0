// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package cliconfig has the types representing and the logic to load CLI-level
// configuration settings.
//
// The CLI config is a small file that is usually found in the user's home
// directory that configures where local working copies are kept, the format
// they are written in and the deployable plugins installed on this machine.
//
// This package does not include the logic for loading the configuration
// databases themselves. Those are the responsibility of the domains package.
package cliconfig

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mitchellh/go-homedir"

	"github.com/driftconfig/driftconfig/internal/plugins"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// ConfigFileEnvVar names the environment variable that overrides the
// location of the CLI configuration file.
const ConfigFileEnvVar = "DRIFTCONFIG_CLI_CONFIG_FILE"

const (
	DefaultPullInterval = 10 * time.Second
	DefaultPullDuration = 50 * time.Second
	DefaultEditor       = "nano"
)

// Config is the structure of the configuration for the driftconfig CLI.
//
// This is not the configuration for a Drift domain itself. That is kept in
// the configuration databases.
type Config struct {
	// ConfigDir is the per-user directory of local working copies.
	ConfigDir string `hcl:"config_dir,optional"`

	// SiteDir is the machine-wide directory of local working copies.
	SiteDir string `hcl:"site_dir,optional"`

	DefaultFormat  string `hcl:"default_format,optional"`
	CheckIntegrity *bool  `hcl:"check_integrity,optional"`
	Editor         string `hcl:"editor,optional"`

	PullLoop *PullLoop `hcl:"pull_loop,block"`
	Plugins  []*Plugin `hcl:"plugin,block"`

	// editorEnv is the value of EDITOR when the configuration was loaded.
	editorEnv string
}

// PullLoop configures "pull -loop".
type PullLoop struct {
	Interval string `hcl:"interval,optional"`
	Duration string `hcl:"duration,optional"`
}

// Plugin declares a deployable plugin installed on this machine.
type Plugin struct {
	Name    string   `hcl:"name,label"`
	Summary string   `hcl:"summary,optional"`
	Version string   `hcl:"version,optional"`
	Tags    []string `hcl:"tags,optional"`
}

// LoadConfig reads the CLI configuration from the file named by
// ConfigFileEnvVar, or from the default location for the current platform.
//
// A configuration file is not required. Problems are reported as
// diagnostics and the returned configuration always has usable defaults.
func LoadConfig() (*Config, tfdiags.Diagnostics) {
	return standardConfigLoader().LoadConfig()
}

func (l *ConfigLoader) LoadConfig() (*Config, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	config := &Config{}

	path := l.getenv(ConfigFileEnvVar)
	explicit := path != ""
	if !explicit {
		var err error
		path, err = configFile()
		if err != nil {
			diags = diags.Append(fmt.Errorf("Error detecting default CLI config file path: %w", err))
		}
	}

	if path != "" {
		if _, err := l.Stat(path); err == nil {
			loaded, loadDiags := l.loadConfigFile(path)
			diags = diags.Append(loadDiags)
			if loaded != nil {
				config = loaded
			}
		} else if explicit {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Warning,
				"Unable to open CLI configuration file",
				fmt.Sprintf("The CLI configuration file at %q does not exist.", path),
			))
		} else {
			log.Printf("[DEBUG] no CLI config file at %s", path)
		}
	}

	config.editorEnv = l.getenv("EDITOR")
	diags = diags.Append(config.Validate())
	diags = diags.Append(config.setDefaults())
	return config, diags
}

// loadConfigFile loads the CLI configuration from a single file, in the
// native HCL syntax or, for files named with a .json suffix, in JSON.
func (l *ConfigLoader) loadConfigFile(path string) (*Config, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	log.Printf("Loading CLI configuration from %s", path)

	src, err := l.ReadFile(path)
	if err != nil {
		diags = diags.Append(fmt.Errorf("Error reading %s: %w", path, err))
		return nil, diags
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var hclDiags hcl.Diagnostics
	if strings.HasSuffix(path, ".json") {
		file, hclDiags = parser.ParseJSON(src, path)
	} else {
		file, hclDiags = parser.ParseHCL(src, path)
	}
	diags = diags.Append(hclDiags)
	if hclDiags.HasErrors() {
		return nil, diags
	}

	result := &Config{}
	diags = diags.Append(gohcl.DecodeBody(file.Body, nil, result))
	if diags.HasErrors() {
		return nil, diags
	}
	return result, diags
}

// Validate checks for errors in the configuration that cannot be detected
// just by HCL decoding, returning any problems as diagnostics.
func (c *Config) Validate() tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics

	if c.DefaultFormat != "" {
		if _, err := tablefile.ParseFormat(c.DefaultFormat); err != nil {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Invalid default_format",
				fmt.Sprintf("The default_format %q is not supported: %s.", c.DefaultFormat, err),
			))
		}
	}

	if c.PullLoop != nil {
		for name, raw := range map[string]string{"interval": c.PullLoop.Interval, "duration": c.PullLoop.Duration} {
			if raw == "" {
				continue
			}
			if d, err := time.ParseDuration(raw); err != nil || d < 0 {
				diags = diags.Append(tfdiags.Sourceless(
					tfdiags.Error,
					"Invalid pull_loop setting",
					fmt.Sprintf("The pull_loop %s %q is not a valid duration, such as \"10s\".", name, raw),
				))
			}
		}
	}

	seen := make(map[string]bool, len(c.Plugins))
	for _, p := range c.Plugins {
		if seen[p.Name] {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Duplicate plugin block",
				fmt.Sprintf("The plugin %q is declared more than once.", p.Name),
			))
		}
		seen[p.Name] = true
		if p.Version != "" {
			if _, err := version.NewVersion(p.Version); err != nil {
				diags = diags.Append(tfdiags.Sourceless(
					tfdiags.Error,
					"Invalid plugin version",
					fmt.Sprintf("The version %q of plugin %q is invalid: %s.", p.Version, p.Name, err),
				))
			}
		}
	}

	return diags
}

// setDefaults fills in the directories left unset and expands "~" in the
// ones that were set.
func (c *Config) setDefaults() tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics

	if c.ConfigDir == "" {
		dir, err := userConfigDir()
		if err != nil {
			diags = diags.Append(fmt.Errorf("Error detecting the user configuration directory: %w", err))
		}
		c.ConfigDir = dir
	}
	if c.SiteDir == "" {
		c.SiteDir = siteDir()
	}

	for _, dir := range []*string{&c.ConfigDir, &c.SiteDir} {
		expanded, err := homedir.Expand(*dir)
		if err != nil {
			diags = diags.Append(fmt.Errorf("Error expanding %q: %w", *dir, err))
			continue
		}
		*dir = expanded
	}
	return diags
}

// Format returns the format local working copies are written in.
func (c *Config) Format() tablefile.Format {
	f, err := tablefile.ParseFormat(c.DefaultFormat)
	if err != nil {
		return tablefile.JSON
	}
	return f
}

// IntegrityEnabled returns whether rows are checked against their table
// schemas. It is on unless disabled explicitly.
func (c *Config) IntegrityEnabled() bool {
	return c.CheckIntegrity == nil || *c.CheckIntegrity
}

// PullLoopSettings returns the interval between pulls and the overall
// duration of "pull -loop".
func (c *Config) PullLoopSettings() (interval, duration time.Duration) {
	interval, duration = DefaultPullInterval, DefaultPullDuration
	if c.PullLoop == nil {
		return interval, duration
	}
	if d, err := time.ParseDuration(c.PullLoop.Interval); err == nil && d >= 0 {
		interval = d
	}
	if d, err := time.ParseDuration(c.PullLoop.Duration); err == nil && d >= 0 {
		duration = d
	}
	return interval, duration
}

// EditorCommand returns the command line used to edit files: the editor
// setting, else the EDITOR environment variable, else DefaultEditor.
func (c *Config) EditorCommand() string {
	switch {
	case c.Editor != "":
		return c.Editor
	case c.editorEnv != "":
		return c.editorEnv
	default:
		return DefaultEditor
	}
}

// PluginRegistry returns a registry of the declared plugins. Plugins with
// an invalid version are registered without one.
func (c *Config) PluginRegistry() (plugins.Registry, error) {
	deployables := make([]plugins.Deployable, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		d := plugins.Deployable{
			Name:    p.Name,
			Summary: p.Summary,
			Tags:    p.Tags,
		}
		if p.Version != "" {
			if v, err := version.NewVersion(p.Version); err == nil {
				d.Version = v
			}
		}
		deployables = append(deployables, d)
	}
	return plugins.NewRegistry(deployables...)
}
