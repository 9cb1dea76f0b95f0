// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tables/origin"
)

// PullCommand is a Command implementation that updates local working
// copies from their origins.
type PullCommand struct {
	Meta
}

func (c *PullCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParsePull(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("pull")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	if !args.Loop {
		if c.pullAll(ctx, args) {
			return 1
		}
		return 0
	}

	interval, duration := c.Config.PullLoopSettings()
	c.Ui.Output("Starting the pull config loop")
	start := c.now()
	failed := false
	err := origin.PullLoop(ctx, interval, duration, func(ctx context.Context) error {
		if c.pullAll(ctx, args) {
			failed = true
		}
		return nil
	})
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output(fmt.Sprintf("Completed in %.1f sec", c.now().Sub(start).Seconds()))
	if failed {
		return 1
	}
	return 0
}

// pullAll pulls every local copy, or the one named by args.Domain, and
// reports whether any pull failed.
func (c *PullCommand) pullAll(ctx context.Context, args *arguments.Pull) bool {
	d := c.dirs()
	infos, err := d.GetDomains(ctx, c.tableOptions())
	if err != nil {
		c.showDiagnostics(warnings(err))
	}

	failed := false
	found := false
	for _, info := range infos {
		if args.Domain != "" && args.Domain != info.Domain.Name {
			continue
		}
		found = true
		if !c.pull(ctx, d, info, args) {
			failed = true
		}
	}
	if args.Domain != "" && !found {
		c.Ui.Error(fmt.Sprintf("No local configuration named %q in %s.", args.Domain, d.Root()))
		return true
	}
	return failed
}

func (c *PullCommand) pull(ctx context.Context, d *domains.Dirs, info *domains.Info, args *arguments.Pull) bool {
	name := info.Domain.Name
	if info.Domain.Origin == "" {
		c.Ui.Error(fmt.Sprintf("Pull failed for %s. The configuration has no origin.", name))
		return false
	}

	store, err := c.originStore(ctx, info.Domain.Origin)
	if err != nil {
		c.showDiagnostics(err)
		return false
	}
	res, err := origin.Pull(ctx, info.TableStore, store, origin.PullOptions{
		IgnoreIfModified: args.IgnoreIfModified,
		Force:            args.Force,
	})
	if err != nil {
		c.showDiagnostics(fmt.Errorf("pulling %s: %w", name, err))
		return false
	}

	if !res.Pulled {
		c.Ui.Warn(fmt.Sprintf("Pull failed for %s. Reason: %s", name, res.Reason))
		if res.Reason == origin.ReasonLocalIsModified {
			c.Ui.Output("Use --ignore-if-modified to overwrite local changes.")
		} else {
			c.Ui.Output("Use --force to force a pull.")
		}
		return false
	}

	if res.Reason == origin.ReasonPulledFromOrigin {
		path, err := d.Save(ctx, res.TableStore)
		if err != nil {
			c.showDiagnostics(err)
			return false
		}
		log.Printf("[DEBUG] pulled %s into %s", name, path)
	}
	c.Ui.Output(fmt.Sprintf("Config for %s pulled. Reason: %s", name, res.Reason))
	return true
}

func (c *PullCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] pull [options] [DOMAIN]

  Update local working copies from their origins. All local copies are
  pulled unless DOMAIN names one of them.

  A copy with local changes that were never pushed is not pulled, as the
  changes would be lost.

Options:

  -ignore-if-modified, -i  Pull even if the local copy has changes. The
                           changes are lost.

  -force, -f               Load from origin even if the local copy is up
                           to date.

  -loop                    Keep pulling for a while. The interval and the
                           duration are set in the pull_loop block of the
                           CLI configuration.
`
	return strings.TrimSpace(helpText)
}

func (c *PullCommand) Synopsis() string {
	return "Pull local configurations from their origins"
}
