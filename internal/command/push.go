// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tables/origin"
)

// PushCommand is a Command implementation that publishes a local working
// copy to its origin.
type PushCommand struct {
	Meta
}

func (c *PushCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParsePush(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("push")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	d := c.dirs()
	info, err := d.Load(ctx, args.Domain, c.tableOptions())
	if errors.Is(err, domains.ErrDomainNotFound) {
		c.Ui.Error(fmt.Sprintf("Can't push '%s'.", args.Domain))
		return 1
	}
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}

	ts := info.TableStore
	c.Ui.Output(fmt.Sprintf("Pushing local config to source %s", info.Domain.Origin))
	store, err := c.originStore(ctx, info.Domain.Origin)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	res, err := origin.Push(ctx, ts, store, origin.PushOptions{Force: args.Force})
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}

	if !res.Pushed {
		c.Ui.Warn(fmt.Sprintf("Push failed. Reason: %s", res.Reason))
		c.Ui.Output("Origin has changed. Use --force to force push.")
		if res.TimeDiff != 0 {
			c.Ui.Output(fmt.Sprintf("Time diff %s", res.TimeDiff))
		}
		return 1
	}

	c.Ui.Output(fmt.Sprintf("Config pushed. Reason: %s", res.Reason))
	if _, err := d.Save(ctx, ts); err != nil {
		c.showDiagnostics(err)
		return 1
	}
	return 0
}

func (c *PushCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] push [options] DOMAIN

  Publish the local working copy of DOMAIN to its origin.

  The push is refused if the origin changed since the local copy was last
  pulled or pushed. Pull first, or use -force to overwrite the changes at
  the origin.

Options:

  -force, -f   Push even if the origin has changed.
`
	return strings.TrimSpace(helpText)
}

func (c *PushCommand) Synopsis() string {
	return "Push a local configuration to its origin"
}
