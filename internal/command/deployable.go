// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/plugins"
	"github.com/driftconfig/driftconfig/internal/tables"
)

const noDescription = "(No description available)"

// DeployableInfoCommand is a Command implementation that shows the
// deployables of the default configuration and the deployable plugins
// installed on this machine.
type DeployableInfoCommand struct {
	Meta
}

func (c *DeployableInfoCommand) Run(args []string) int {
	if len(args) > 0 {
		c.showDiagnostics(tooManyArguments("deployable info"))
		return 1
	}

	def, err := c.defaultConfig(c.CommandContext())
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	ts := def.TableStore
	view := views.NewDeployables(c.View)
	c.View.Header(def.Domain)

	names := ts.MustTable(configdb.TableDeployableNames)
	deployables := ts.MustTable(configdb.TableDeployables)
	view.Routes(configdb.Join(names, nil, ts.MustTable(configdb.TableRouting), names))

	installed := c.installedPlugins()
	reports := make([]views.PluginReport, 0, len(installed))
	for _, d := range installed {
		key := tables.Row{"deployable_name": d.Name}
		_, registered := names.Get(key)
		reports = append(reports, views.PluginReport{
			Deployable:  d,
			Registered:  registered,
			Assignments: deployables.Find(key),
		})
	}

	var unknown []string
	for _, row := range names.Rows() {
		name := cellString(row["deployable_name"])
		if !slices.ContainsFunc(installed, func(d plugins.Deployable) bool { return d.Name == name }) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	view.Plugins(reports, unknown)
	view.Assignments(deployables.Rows())
	return 0
}

func (c *DeployableInfoCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] deployable info

  Show the deployables registered in the default configuration with their
  api routes and tier assignments, and the deployable plugins declared in
  the CLI configuration of this machine.
`
	return strings.TrimSpace(helpText)
}

func (c *DeployableInfoCommand) Synopsis() string {
	return "Show deployable registration info"
}

// DeployableRegisterCommand is a Command implementation that registers
// installed deployable plugins in the local working copy.
type DeployableRegisterCommand struct {
	Meta
}

func (c *DeployableRegisterCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseDeployableRegister(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("deployable register")
		return cli.RunResultHelp
	}

	var selected []plugins.Deployable
	for _, d := range c.installedPlugins() {
		if args.Name == "all" || args.Name == d.Name {
			selected = append(selected, d)
		}
	}
	if len(selected) == 0 {
		c.Ui.Error(fmt.Sprintf("No deployable plugin named %s is installed. Plugins are declared in the CLI configuration.", args.Name))
		return 1
	}
	allTiers := slices.Contains(args.Tiers, "all")

	return c.withLocalConfig(c.CommandContext(), func(ts *tables.TableStore, _ string) int {
		names := ts.MustTable(configdb.TableDeployableNames)
		deployables := ts.MustTable(configdb.TableDeployables)
		tiers := ts.MustTable(configdb.TableTiers).Rows()

		for _, tier := range args.Tiers {
			if tier == "all" {
				continue
			}
			if !slices.ContainsFunc(tiers, func(r tables.Row) bool { return r["tier_name"] == tier }) {
				c.Ui.Warn(fmt.Sprintf("No tier named %s found.", tier))
			}
		}

		for _, d := range selected {
			summary := d.Summary
			if summary == "" {
				summary = noDescription
			}
			row := tables.Row{"deployable_name": d.Name, "display_name": summary}
			if len(d.Tags) > 0 {
				row["tags"] = d.Tags
			}
			if _, err := names.Update(row); err != nil {
				c.showDiagnostics(err)
				return 1
			}
			c.Ui.Output(fmt.Sprintf("%s added/updated.", d.Name))

			for _, tier := range tiers {
				tierName := cellString(tier["tier_name"])
				if !allTiers && !slices.Contains(args.Tiers, tierName) {
					continue
				}
				row := tables.Row{
					"tier_name":       tierName,
					"deployable_name": d.Name,
					"is_active":       true,
				}
				if len(d.Tags) > 0 {
					row["tags"] = d.Tags
				}
				// Live tiers are pinned to the registered version.
				if live, _ := tier["is_live"].(bool); live && d.Version != nil {
					row["version"] = d.VersionString()
				}
				stored, err := deployables.Update(row)
				if err != nil {
					c.showDiagnostics(err)
					return 1
				}
				c.View.Row("Adding registration", stored)
			}
		}
		return 0
	})
}

func (c *DeployableRegisterCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] deployable register [options] NAME

  Add or update the registration of the deployable plugin NAME in the local
  working copy of the default configuration. Use "all" as NAME to register
  every installed plugin. Plugins are declared in the CLI configuration.

Options:

  -tier, -t TIER   Assign the deployable to a tier. Repeat the option for
                   several tiers, or use "all" for every tier. Live tiers
                   are pinned to the version of the plugin.
`
	return strings.TrimSpace(helpText)
}

func (c *DeployableRegisterCommand) Synopsis() string {
	return "Register deployable plugins"
}

func (m *Meta) installedPlugins() []plugins.Deployable {
	if m.Plugins == nil {
		return nil
	}
	return m.Plugins.Deployables()
}
