// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

// EditCommand is a Command implementation that opens a table of the local
// working copy in an editor.
type EditCommand struct {
	Meta
}

func (c *EditCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseEdit(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("edit")
		return cli.RunResultHelp
	}
	if _, ok := configdb.Definition().Table(args.Table); !ok {
		c.Ui.Error(fmt.Sprintf("There is no table named %q. Tables are: %s.",
			args.Table, strings.Join(configdb.Definition().TableNames(), ", ")))
		return 1
	}

	ctx := c.CommandContext()
	def, err := c.defaultConfig(ctx)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	if def.Local == nil {
		c.Ui.Error(fmt.Sprintf("The configuration at %s is not stored locally. Only local copies can be edited.", def.URL))
		return 1
	}

	path, old, err := c.readTableUnit(def.Local.Path, args.Table)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	if f, ok := tablefile.Detect(old); !ok || f.Binary() {
		c.Ui.Error(fmt.Sprintf("The table %s in %s is not stored as JSON and can't be edited as text.", args.Table, def.Local.Path))
		return 1
	}

	edited, err := c.editText(ctx, args.Table+"-*.json", old)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	if edited == nil {
		c.Ui.Output("No changes made.")
		return 0
	}

	c.Ui.Output(fmt.Sprintf("Writing changes to %s", path))
	if err := afero.WriteFile(c.Fs, path, edited, 0o644); err != nil {
		c.showDiagnostics(err)
		return 1
	}
	if _, err := c.dirs().Load(ctx, def.Domain.Name, c.tableOptions()); err != nil {
		c.showDiagnostics(err)
		if restoreErr := afero.WriteFile(c.Fs, path, old, 0o644); restoreErr != nil {
			log.Printf("[ERROR] restoring %s: %s", path, restoreErr)
		}
		c.Ui.Error("The changes were not saved.")
		return 1
	}

	c.View.Epilogue(def.Domain)
	return 0
}

// readTableUnit reads the unit of the named table from a local copy,
// whichever format it was saved in.
func (c *EditCommand) readTableUnit(dir, table string) (string, []byte, error) {
	for _, f := range tablefile.Formats {
		path := filepath.Join(dir, f.TableUnit(table))
		data, err := afero.ReadFile(c.Fs, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return path, data, err
	}
	return "", nil, fmt.Errorf("the table %s has no file in %s", table, dir)
}

func (c *EditCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] edit TABLE

  Open a table of the local working copy of the default configuration in an
  editor. The editor is the editor setting of the CLI configuration, or the
  EDITOR environment variable.

  The edited table must be valid, or the changes are discarded. Tables are:
  ` + strings.Join(configdb.Definition().TableNames(), ", ") + `.
`
	return strings.TrimSpace(helpText)
}

func (c *EditCommand) Synopsis() string {
	return "Edit a table of the local configuration"
}
