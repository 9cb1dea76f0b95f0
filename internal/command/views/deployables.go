// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/driftconfig/driftconfig/internal/plugins"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// PluginReport relates a deployable plugin installed on this machine to
// the configuration database.
type PluginReport struct {
	Deployable plugins.Deployable

	// Registered is set when the deployable is in the deployable-names
	// table.
	Registered bool

	// Assignments are the deployables table rows of the plugin.
	Assignments []tables.Row
}

// Deployables renders the deployable info command.
type Deployables interface {
	Diagnostics(diags tfdiags.Diagnostics)

	// Routes prints the deployables registered in the configuration
	// database joined with their api routes.
	Routes(rows []tables.Row)

	// Plugins prints the deployable plugins installed on this machine.
	// unknown names deployables registered in the configuration database
	// with no installed plugin.
	Plugins(reports []PluginReport, unknown []string)

	// Assignments prints the deployables table grouped by tier.
	Assignments(rows []tables.Row)
}

func NewDeployables(view *View) Deployables {
	return &DeployablesHuman{view: view}
}

type DeployablesHuman struct {
	view *View
}

var _ Deployables = (*DeployablesHuman)(nil)

func (v *DeployablesHuman) Diagnostics(diags tfdiags.Diagnostics) {
	v.view.Diagnostics(diags)
}

func (v *DeployablesHuman) Routes(rows []tables.Row) {
	_, _ = v.view.streams.Println(v.view.colorize.Color("[bold]Deployables and api routes registered in config:[reset]\n"))
	v.view.Table([]string{"deployable_name", "api", "requires_api_key", "display_name", "tags"}, rows, "  ")
}

func (v *DeployablesHuman) Plugins(reports []PluginReport, unknown []string) {
	_, _ = v.view.streams.Println(v.view.colorize.Color("\n[bold]Deployables registered as plugins on this machine:[reset]\n"))
	if len(reports) == 0 {
		_, _ = v.view.streams.Println("  (none)")
	}
	for _, report := range reports {
		d := report.Deployable
		root := v.view.colorize.Color(fmt.Sprintf("[bold]%s[reset]", d.Name))
		if !report.Registered {
			root += v.view.colorize.Color(" [red](Plugin NOT registered in config DB!)[reset]")
		}
		tree := treeprint.NewWithRoot(root)
		if len(report.Assignments) > 0 {
			branch := tree.AddBranch("tier assignment")
			for _, row := range report.Assignments {
				label := cellValue(row["tier_name"])
				if version, ok := row["version"].(string); ok && version != "" {
					label += fmt.Sprintf(" [%s]", version)
				}
				if active, _ := row["is_active"].(bool); !active {
					label += v.view.colorize.Color(" [dark_gray][inactive][reset]")
				}
				branch.AddNode(label)
			}
		}
		tree.AddNode(fmt.Sprintf("tags: %s", strings.Join(d.Tags, ", ")))
		tree.AddNode(fmt.Sprintf("version: %s", d.VersionString()))
		if d.Summary != "" {
			tree.AddNode(fmt.Sprintf("summary: %s", d.Summary))
		}
		_, _ = v.view.streams.Print(tree.String())
	}

	if len(unknown) > 0 {
		_, _ = v.view.streams.Println(fmt.Sprintf("\nNote! The following deployables are registered in the config, but are not registered as plugins on this machine:\n%s", strings.Join(unknown, ", ")))
	}
}

func (v *DeployablesHuman) Assignments(rows []tables.Row) {
	_, _ = v.view.streams.Println(v.view.colorize.Color("\n[bold]Deployables assigned to tiers:[reset]\n"))
	byTier := map[string][]tables.Row{}
	for _, row := range rows {
		tier := cellValue(row["tier_name"])
		byTier[tier] = append(byTier[tier], row)
	}
	tierNames := make([]string, 0, len(byTier))
	for name := range byTier {
		tierNames = append(tierNames, name)
	}
	sort.Strings(tierNames)

	for _, tier := range tierNames {
		_, _ = v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf("[bold]%s:[reset]", tier)))
		names := make([]string, 0, len(byTier[tier]))
		for _, row := range byTier[tier] {
			name := cellValue(row["deployable_name"])
			if active, _ := row["is_active"].(bool); !active {
				name = v.view.colorize.Color("[red]" + name + "[reset]")
			}
			names = append(names, name)
		}
		_, _ = v.view.streams.Println(strings.Join(names, " "))
		_, _ = v.view.streams.Println("")
	}
}
