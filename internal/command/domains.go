// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"

	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// ListCommand is a Command implementation that lists the local working
// copies of configuration databases.
type ListCommand struct {
	Meta
}

func (c *ListCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] list

  Lists the configuration databases stored locally on this machine.
`
	return strings.TrimSpace(helpText)
}

func (c *ListCommand) Synopsis() string {
	return "List locally stored configurations"
}

func (c *ListCommand) Run(args []string) int {
	if len(args) > 0 {
		c.showDiagnostics(tooManyArguments("list"))
		return 1
	}

	ctx := c.CommandContext()
	view := views.NewDomains(c.View)
	d := c.dirs()

	infos, err := d.GetDomains(ctx, c.tableOptions())
	if err != nil {
		view.Diagnostics(warnings(err))
	}
	view.List(d.Root(), infos)
	return 0
}

// InfoCommand is a Command implementation that describes the local working
// copies and which of them is the default.
type InfoCommand struct {
	Meta
}

func (c *InfoCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] info

  Lists out all configuration databases that are active on this machine and
  shows which one commands use by default.

  The default configuration is the one named by the DRIFT_CONFIG_URL
  environment variable or the -config-url option, or else the only
  configuration stored locally.
`
	return strings.TrimSpace(helpText)
}

func (c *InfoCommand) Synopsis() string {
	return "Show the configurations active on this machine"
}

func (c *InfoCommand) Run(args []string) int {
	if len(args) > 0 {
		c.showDiagnostics(tooManyArguments("info"))
		return 1
	}

	ctx := c.CommandContext()
	view := views.NewDomains(c.View)
	d := c.dirs()

	infos, err := d.GetDomains(ctx, c.tableOptions())
	if err != nil {
		view.Diagnostics(warnings(err))
	}

	var def *domains.Default
	if len(infos) > 0 {
		def, err = d.GetDefault(ctx, c.ConfigURL, c.tableOptions())
		if err != nil {
			view.Diagnostics(warnings(err))
		}
	}
	view.Info(d.Root(), infos, def)
	return 0
}

func tooManyArguments(command string) tfdiags.Diagnostic {
	return tfdiags.Sourceless(
		tfdiags.Error,
		"Too many command line arguments",
		"The "+command+" command expects no arguments.",
	)
}

// warnings turns errors that do not stop a command into warnings.
func warnings(err error) tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics
	for _, diag := range diags.Append(err) {
		desc := diag.Description()
		diags = diags.Append(tfdiags.Sourceless(tfdiags.Warning, desc.Summary, desc.Detail))
	}
	return diags
}
