// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

// CopyCommand is a Command implementation that copies a configuration
// database from one backend to another.
type CopyCommand struct {
	Meta
}

func (c *CopyCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseCopy(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("copy")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	c.Ui.Output(fmt.Sprintf("Copy '%s' to '%s'", args.Source, args.Dest))

	var ts *tables.TableStore
	if args.Source == "." {
		def, err := c.defaultConfig(ctx)
		if err != nil {
			c.showDiagnostics(err)
			return 1
		}
		ts = def.TableStore
	} else {
		src, err := c.originStore(ctx, args.Source)
		if err != nil {
			c.showDiagnostics(err)
			return 1
		}
		ts, err = src.LoadTableStore(ctx, configdb.Definition(), remote.LoadOptions{Options: c.tableOptions()})
		if err != nil {
			c.showDiagnostics(fmt.Errorf("loading configuration from %s: %w", args.Source, err))
			return 1
		}
	}

	dest, err := c.originStore(ctx, args.Dest)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	dest.Format = tablefile.JSON
	if args.Binary {
		dest.Format = tablefile.Msgpack
	}
	if err := dest.SaveTableStore(ctx, ts.Clone()); err != nil {
		c.showDiagnostics(fmt.Errorf("saving configuration to %s: %w", args.Dest, err))
		return 1
	}
	c.Ui.Output("Done.")
	return 0
}

func (c *CopyCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] copy [options] SOURCE DEST

  Copy the configuration database at the backend URL SOURCE to the backend
  URL DEST. Use "." as SOURCE to copy the default configuration.

Options:

  -binary, -p   Write the copy in the binary msgpack format instead of
                JSON.
`
	return strings.TrimSpace(helpText)
}

func (c *CopyCommand) Synopsis() string {
	return "Copy a configuration between backends"
}
