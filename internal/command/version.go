// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/configdb"
)

// VersionCommand is a Command implementation prints the version.
type VersionCommand struct {
	Meta

	Version           string
	VersionPrerelease string
	Platform          string
}

func (c *VersionCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] version [options]

  Displays the version of driftconfig and of the configuration database
  definition it reads and writes.

Options:

  -json       Output the version information as a JSON object.
`
	return strings.TrimSpace(helpText)
}

func (c *VersionCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseVersion(rawArgs)

	// Instantiate the view, even if there are flag errors, so that we render
	// diagnostics according to the desired view
	vt := views.ViewHuman
	if args.JSON {
		vt = views.ViewJSON
	}
	view := views.NewVersion(vt, c.View)

	if diags.HasErrors() {
		view.Diagnostics(diags)
		c.View.HelpPrompt("version")
		return cli.RunResultHelp
	}

	if !view.PrintVersion(c.Version, c.VersionPrerelease, c.Platform, configdb.DefinitionVersion) {
		return 1
	}
	return 0
}

func (c *VersionCommand) Synopsis() string {
	return "Show the current driftconfig version"
}
