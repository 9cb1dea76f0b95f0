// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tables"
)

// AddTenantCommand is a Command implementation that reserves a tenant and
// provisions it on deployables of a tier in one step.
type AddTenantCommand struct {
	Meta
}

func (c *AddTenantCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseAddTenant(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("addtenant")
		return cli.RunResultHelp
	}

	c.Ui.Output(strings.Join([]string{
		"Adding a new tenant.",
		"  Domain:       " + args.Domain,
		"  Tenant:       " + args.Name,
		"  Tier:         " + args.Tier,
		"  Organization: " + args.Organization,
		"  Product:      " + args.Product,
		"  Deployables:  " + strings.Join(args.Deployables, ", "),
	}, "\n"))

	ctx := c.CommandContext()
	d := c.dirs()
	info, err := d.Load(ctx, args.Domain, c.tableOptions())
	if errors.Is(err, domains.ErrDomainNotFound) {
		c.Ui.Error(fmt.Sprintf("The domain '%s' is not found locally. Run 'init' to fetch it.", args.Domain))
		return 1
	}
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output(info.String())

	ts := info.TableStore
	row, err := ts.MustTable(configdb.TableTenantNames).Update(c.reservation(args.Name, args.Organization, args.Product))
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.View.Row("New tenant record", row)

	if len(args.Deployables) > 0 {
		tenants := ts.MustTable(configdb.TableTenants)
		var added []tables.Row
		for _, name := range args.Deployables {
			row, err := tenants.Add(tables.Row{
				"tier_name":       args.Tier,
				"tenant_name":     args.Name,
				"deployable_name": name,
			})
			if err != nil {
				c.showDiagnostics(err)
				return 1
			}
			added = append(added, row)
		}
		c.View.Rows("Associating with deployables", added)
	}

	if args.Preview {
		c.Ui.Output("Previewing only. Exiting now.")
		return 0
	}

	dir, err := d.Save(ctx, ts)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	c.Ui.Output(fmt.Sprintf("Changes to config saved at %s.", dir))
	c.Ui.Output("Remember to push changes to persist them.")
	return 0
}

func (c *AddTenantCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] addtenant [options] DOMAIN

  Reserve a tenant name in the local working copy of DOMAIN and provision
  the tenant on deployables of a tier.

Options:

  -name, -n NAME              The tenant name. Required.

  -tier, -t TIER              The tier to provision the tenant on. Required.

  -organization, -o NAME      The organization of the tenant. Required.

  -product, -p NAME           The product of the tenant. Required.

  -deployables, -d A,B        The deployables to provision the tenant on.

  -preview                    Show the new entries without saving them.
`
	return strings.TrimSpace(helpText)
}

func (c *AddTenantCommand) Synopsis() string {
	return "Add a tenant to a tier"
}
