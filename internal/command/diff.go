// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablediff"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// DiffCommand is a Command implementation that compares a local working
// copy with its last saved state and with its origin.
type DiffCommand struct {
	Meta
}

func (c *DiffCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseDiff(rawArgs)

	vt := views.ViewHuman
	if args.JSON {
		vt = views.ViewJSON
	}
	view := views.NewDiff(vt, c.View)

	if diags.HasErrors() {
		view.Diagnostics(diags)
		c.View.HelpPrompt("diff")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	info, err := c.dirs().Load(ctx, args.Domain, c.tableOptions())
	if errors.Is(err, domains.ErrDomainNotFound) {
		view.Diagnostics(diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Configuration not found",
			fmt.Sprintf("There is no local configuration named %q.", args.Domain),
		)))
		return 1
	}
	if err != nil {
		view.Diagnostics(diags.Append(err))
		return 1
	}

	// The working copy itself is never saved here.
	local := info.TableStore.Clone()
	saved, current := local.RefreshMetadata(c.now())

	store, err := c.originStore(ctx, info.Domain.Origin)
	if err != nil {
		view.Diagnostics(diags.Append(err))
		return 1
	}
	originTS, err := store.LoadTableStore(ctx, configdb.Definition(), remote.LoadOptions{Options: local.Options()})
	if err != nil {
		view.Diagnostics(diags.Append(fmt.Errorf("loading origin %s: %w", info.Domain.Origin, err)))
		return 1
	}

	view.Meta("Local store and scratch", tablediff.DiffMeta(saved, current))
	originDiff := tablediff.DiffMeta(originTS.Meta(), current)
	view.Meta("Local and origin", originDiff)

	if args.Details {
		changed, err := tablediff.DiffStores(local, originTS)
		if err != nil {
			diags = diags.Append(fmt.Errorf("comparing tables: %w", err))
		} else {
			for _, name := range originDiff.ChangedTables() {
				t, err := local.GetTable(name)
				if err != nil {
					t, err = originTS.GetTable(name)
				}
				if err != nil {
					diags = diags.Append(err)
					continue
				}
				view.Table(t.Def(), changed[name])
			}
		}
	}

	if len(diags) > 0 {
		view.Diagnostics(diags)
	}
	if !view.Flush() || diags.HasErrors() {
		return 1
	}
	return 0
}

func (c *DiffCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] diff [options] DOMAIN

  Compare the local working copy of DOMAIN with the state it was last saved
  in, and with its origin.

Options:

  -details, -d   Show the row level differences of every table that differs
                 between the local copy and the origin.

  -json          Output the comparisons as a JSON object.
`
	return strings.TrimSpace(helpText)
}

func (c *DiffCommand) Synopsis() string {
	return "Compare a local configuration with its origin"
}
