// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// InitCommand is a Command implementation that makes a local working copy
// of a configuration database from its origin.
type InitCommand struct {
	Meta
}

func (c *InitCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseInit(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("init")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	c.Ui.Output(fmt.Sprintf("Initializing config from %s", args.Source))

	opts := c.tableOptions()
	if args.IgnoreErrors {
		opts.CheckIntegrity = false
	}

	store, err := c.originStore(ctx, args.Source)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	ts, err := store.LoadTableStore(ctx, configdb.Definition(), remote.LoadOptions{Options: opts})
	if err != nil {
		c.showDiagnostics(fmt.Errorf("loading configuration from %s: %w", args.Source, err))
		return 1
	}
	domain, err := configdb.GetDomain(ts)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	ts.SetBaseChecksum(ts.Meta().Checksum)
	c.Ui.Output(fmt.Sprintf("Config domain name: %s", domain.Name))

	path, err := c.dirs().Save(ctx, ts)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output(fmt.Sprintf("Config stored at: %s", path))
	return 0
}

func (c *InitCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] init [options] SOURCE

  Initialize a local working copy of the configuration database stored at
  the backend URL SOURCE. The copy is stored in a directory named after the
  domain of the configuration, and SOURCE becomes its origin for pull and
  push.

Options:

  -ignore-errors, -i   Load the configuration even if it fails its
                       integrity checks.
`
	return strings.TrimSpace(helpText)
}

func (c *InitCommand) Synopsis() string {
	return "Initialize a local copy of a configuration"
}
