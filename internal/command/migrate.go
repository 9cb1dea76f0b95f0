// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// MigrateCommand is a Command implementation that upgrades a local working
// copy to the current table definition.
type MigrateCommand struct {
	Meta
}

func (c *MigrateCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseMigrate(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("migrate")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	c.Ui.Output(fmt.Sprintf("Migrating '%s'", args.Domain))

	d := c.dirs()
	dir := d.DomainDir(args.Domain)
	if exists, _ := afero.DirExists(c.Fs, dir); !exists {
		c.Ui.Error(fmt.Sprintf("Path not found: %s", dir))
		return 1
	}

	// Stores saved with an older definition lack the newer tables and may
	// not pass the current checks until migrated.
	opts := c.tableOptions()
	check := opts.CheckIntegrity
	opts.CheckIntegrity = false
	store := d.Store(args.Domain)
	ts, err := store.LoadTableStore(ctx, configdb.Definition(), remote.LoadOptions{Options: opts, CreateMissing: true})
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}

	migrated, migrateDiags := configdb.Migrate(ts)
	diags = diags.Append(migrateDiags)
	if !diags.HasErrors() && check {
		diags = diags.Append(migrated.Validate())
	}
	c.showDiagnostics(diags)
	if diags.HasErrors() {
		return 1
	}

	if err := store.SaveTableStore(ctx, migrated); err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output("Done.")
	return 0
}

func (c *MigrateCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] migrate DOMAIN

  Upgrade the local working copy of DOMAIN to the table definition of this
  version of driftconfig. Tables that are missing are created empty, and
  new fields get their default values.

  Push the copy afterwards to upgrade its origin.
`
	return strings.TrimSpace(helpText)
}

func (c *MigrateCommand) Synopsis() string {
	return "Upgrade a local configuration to the current definition"
}
