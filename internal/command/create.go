// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-homedir"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/origin"
)

// CreateCommand is a Command implementation that creates a new, empty
// configuration database and its origin.
type CreateCommand struct {
	Meta
}

func (c *CreateCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseCreate(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("create")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	d := c.dirs()

	info, err := d.Load(ctx, args.Domain, c.tableOptions())
	switch {
	case err == nil:
		c.Ui.Error(fmt.Sprintf("The domain name '%s' is taken:", args.Domain))
		c.Ui.Output(info.String())
		return 1
	case !errors.Is(err, domains.ErrDomainNotFound):
		c.showDiagnostics(err)
		return 1
	}

	source, ok := c.originURL(args.Domain, args.Source)
	if !ok {
		return 1
	}

	ts := configdb.NewTableStore(c.tableOptions())
	ts.SetLineage(tables.NewLineage())
	err = configdb.SetDomain(ts, configdb.Domain{
		Name:        args.Domain,
		DisplayName: args.DisplayName,
		Origin:      source,
	})
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}

	dir, err := d.Save(ctx, ts)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output(fmt.Sprintf("New config for '%s' saved to %s.", args.Domain, dir))
	c.Ui.Output("Pushing to origin...")

	store, err := c.originStore(ctx, source)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	res, err := origin.Push(ctx, ts, store, origin.PushOptions{First: true})
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	if !res.Pushed {
		c.Ui.Warn(fmt.Sprintf("Push failed. Reason: %s", res.Reason))
		return 1
	}
	// The local copy now records the origin checksum as its base.
	if _, err := d.Save(ctx, ts); err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output("Done.")
	return 0
}

// originURL normalizes the origin of a new configuration. The last folder
// of an S3 origin must be named after the domain.
func (c *CreateCommand) originURL(domain, source string) (string, bool) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		source = strings.TrimSuffix(source, "/")
		u, err := url.Parse(source)
		if err != nil {
			c.showDiagnostics(fmt.Errorf("invalid origin URL: %w", err))
			return "", false
		}
		folder := path.Base(strings.TrimSuffix(u.Path, "/"))
		if u.Path == "" || u.Path == "/" {
			folder = ""
		}
		if folder != domain {
			c.Ui.Error("Error: For S3 source, the target folder name and domain name must match.")
			c.Ui.Output(fmt.Sprintf("Target folder is '%s' but domain name is '%s'", folder, domain))
			suggestion := source + "/" + domain
			if folder != "" {
				suggestion = strings.TrimSuffix(source, folder) + domain
			}
			c.Ui.Output(fmt.Sprintf("Suggestion: %s", suggestion))
			return "", false
		}
	case strings.HasPrefix(source, "file://"):
		expanded, err := homedir.Expand(strings.TrimPrefix(source, "file://"))
		if err != nil {
			c.showDiagnostics(fmt.Errorf("invalid origin URL: %w", err))
			return "", false
		}
		source = "file://" + expanded
	}
	return source, true
}

func (c *CreateCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] create [options] DOMAIN SOURCE

  Create a new, empty configuration database for DOMAIN with its origin at
  the backend URL SOURCE. A local working copy is saved and pushed to the
  origin.

  For S3 origins the last folder of SOURCE must be named after DOMAIN, as
  in s3://bucket/configs/DOMAIN.

Options:

  -display-name=NAME   The display name of the domain.
`
	return strings.TrimSpace(helpText)
}

func (c *CreateCommand) Synopsis() string {
	return "Create a new configuration"
}
