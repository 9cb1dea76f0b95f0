// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables"
)

// entity describes a kind of entry that the tier, organization, product
// and tenant commands manage.
type entity struct {
	// noun is the name of the command group.
	noun string

	// table holds the entries and key is the field naming them.
	table string
	key   string

	// altKey is a second field that info also looks entries up by.
	altKey string

	// columns are shown when listing all entries.
	columns []string
}

var (
	tierEntity = entity{
		noun:    "tier",
		table:   configdb.TableTiers,
		key:     "tier_name",
		columns: []string{"tier_name", "state", "is_live"},
	}
	organizationEntity = entity{
		noun:    "organization",
		table:   configdb.TableOrganizations,
		key:     "organization_name",
		altKey:  "short_name",
		columns: []string{"organization_name", "short_name", "state", "display_name"},
	}
	productEntity = entity{
		noun:    "product",
		table:   configdb.TableProducts,
		key:     "product_name",
		columns: []string{"organization_name", "product_name", "state", "deployables"},
	}
	tenantEntity = entity{
		noun:    "tenant",
		table:   configdb.TableTenantNames,
		key:     "tenant_name",
		columns: []string{"organization_name", "product_name", "tenant_name", "reserved_at", "reserved_by"},
	}
)

func (e entity) title(name string) string {
	return strings.ToUpper(e.noun[:1]) + e.noun[1:] + " " + name
}

// find returns the entry named name, trying the key field and then the
// alternative key field.
func (e entity) find(ts *tables.TableStore, name string) (tables.Row, bool) {
	t := ts.MustTable(e.table)
	if row, ok := t.Get(tables.Row{e.key: name}); ok {
		return row, true
	}
	if e.altKey != "" {
		if rows := t.Find(tables.Row{e.altKey: name}); len(rows) > 0 {
			return rows[0], true
		}
	}
	return nil, false
}

// EntityInfoCommand is a Command implementation that lists the entries of
// one kind, or shows one of them in full.
type EntityInfoCommand struct {
	Meta
	entity entity
}

func (c *EntityInfoCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseEntityInfo(c.entity.noun, rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt(c.entity.noun + " info")
		return cli.RunResultHelp
	}

	def, err := c.defaultConfig(c.CommandContext())
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	ts := def.TableStore
	c.View.Header(def.Domain)

	if args.Name == "" {
		c.Ui.Output(strings.ToUpper(c.entity.table[:1]) + c.entity.table[1:] + ":")
		c.View.Table(c.entity.columns, ts.MustTable(c.entity.table).Rows(), "  ")
		return 0
	}

	row, found := c.entity.find(ts, args.Name)
	if found {
		c.View.Row(c.entity.title(cellString(row[c.entity.key])), row)
	}
	if c.entity.table == configdb.TableTenantNames {
		// The deployables a tenant is provisioned on.
		assigned := ts.MustTable(configdb.TableTenants).Find(tables.Row{"tenant_name": args.Name})
		if len(assigned) > 0 {
			c.View.Rows(c.entity.title(args.Name)+" deployables", assigned)
			found = true
		}
	}
	if !found {
		c.Ui.Error(fmt.Sprintf("No %s named %s found.", c.entity.noun, args.Name))
		return 1
	}
	return 0
}

func (c *EntityInfoCommand) Help() string {
	helpText := fmt.Sprintf(`
Usage: driftconfig [global options] %[1]s info [options] [NAME]

  List the %[2]s of the default configuration, or show the %[1]s NAME in
  full.

Options:

  -name, -n NAME   The %[1]s to show.
`, c.entity.noun, c.entity.table)
	return strings.TrimSpace(helpText)
}

func (c *EntityInfoCommand) Synopsis() string {
	return fmt.Sprintf("Show %s info", c.entity.noun)
}

// EntityEditCommand is a Command implementation that opens an entry in an
// editor and stores the result in the local working copy.
type EntityEditCommand struct {
	Meta
	entity entity
}

func (c *EntityEditCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseEntityEdit(c.entity.noun, rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt(c.entity.noun + " edit")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	return c.withLocalConfig(ctx, func(ts *tables.TableStore, _ string) int {
		t := ts.MustTable(c.entity.table)
		row, ok := t.Get(tables.Row{c.entity.key: args.Name})
		if !ok {
			c.Ui.Error(fmt.Sprintf("%s %s not found!", c.entity.noun, args.Name))
			return 1
		}
		edited, changed, err := c.editRow(ctx, row)
		if err != nil {
			c.showDiagnostics(err)
			return 1
		}
		if !changed {
			c.Ui.Output("No changes made.")
			return 0
		}
		if _, err := t.Update(edited); err != nil {
			c.showDiagnostics(err)
			return 1
		}
		return 0
	})
}

func (c *EntityEditCommand) Help() string {
	helpText := fmt.Sprintf(`
Usage: driftconfig [global options] %[1]s edit NAME

  Open the %[1]s NAME in an editor. The edited entry is stored in the local
  working copy of the default configuration.
`, c.entity.noun)
	return strings.TrimSpace(helpText)
}

func (c *EntityEditCommand) Synopsis() string {
	return fmt.Sprintf("Edit a %s", c.entity.noun)
}

// addEntry adds row to the entity table of ts, first opening it in an
// editor if edit is set.
func (m *Meta) addEntry(ctx context.Context, ts *tables.TableStore, e entity, row tables.Row, edit bool) int {
	if edit {
		edited, changed, err := m.editRow(ctx, row)
		if err != nil {
			m.showDiagnostics(err)
			return 1
		}
		if changed {
			row = edited
		}
	}

	t := ts.MustTable(e.table)
	if _, exists := t.Get(row); exists {
		m.Ui.Error(fmt.Sprintf("%s already exists!", e.title(cellString(row[e.key]))))
		return 1
	}
	added, err := t.Add(row)
	if err != nil {
		m.showDiagnostics(err)
		return 1
	}
	m.View.Row("Added "+e.noun, added)
	return 0
}

// TierAddCommand is a Command implementation that adds a tier.
type TierAddCommand struct {
	Meta
}

func (c *TierAddCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseTierAdd(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("tier add")
		return cli.RunResultHelp
	}
	if err := configdb.ValidateTierName(args.Name); err != nil {
		c.showDiagnostics(err)
		return 1
	}

	ctx := c.CommandContext()
	return c.withLocalConfig(ctx, func(ts *tables.TableStore, _ string) int {
		row := tables.Row{"tier_name": args.Name, "is_live": args.IsLive}
		return c.addEntry(ctx, ts, tierEntity, row, args.Edit)
	})
}

func (c *TierAddCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] tier add [options] NAME

  Add a tier. NAME is 3 to 20 upper case letters A-Z.

Options:

  -is-live     Flag the tier for live use. This is the default.

  -is-dev      Flag the tier for development use.

  -edit, -e    Open the new entry in an editor before adding it.
`
	return strings.TrimSpace(helpText)
}

func (c *TierAddCommand) Synopsis() string {
	return "Add a tier"
}

// OrganizationAddCommand is a Command implementation that adds an
// organization.
type OrganizationAddCommand struct {
	Meta
}

func (c *OrganizationAddCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseOrganizationAdd(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("organization add")
		return cli.RunResultHelp
	}
	for _, name := range []string{args.Name, args.ShortName} {
		if err := configdb.ValidateOrganizationName(name); err != nil {
			c.showDiagnostics(err)
			return 1
		}
	}

	ctx := c.CommandContext()
	return c.withLocalConfig(ctx, func(ts *tables.TableStore, _ string) int {
		row := tables.Row{"organization_name": args.Name, "short_name": args.ShortName}
		if args.DisplayName != "" {
			row["display_name"] = args.DisplayName
		}
		if rows := ts.MustTable(configdb.TableOrganizations).Find(tables.Row{"short_name": args.ShortName}); len(rows) > 0 {
			c.Ui.Error(fmt.Sprintf("The short name %s is used by organization %s.", args.ShortName, cellString(rows[0]["organization_name"])))
			return 1
		}
		return c.addEntry(ctx, ts, organizationEntity, row, args.Edit)
	})
}

func (c *OrganizationAddCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] organization add [options] NAME SHORT_NAME

  Add an organization. NAME and SHORT_NAME are 2 to 20 lower case letters
  and digits. Products and tenants of the organization are prefixed with
  its short name.

Options:

  -display-name, -d NAME   The display name of the organization.

  -edit, -e                Open the new entry in an editor before adding
                           it.
`
	return strings.TrimSpace(helpText)
}

func (c *OrganizationAddCommand) Synopsis() string {
	return "Add an organization"
}

// organizationByShortName finds the organization whose short name prefixes
// name.
func (m *Meta) organizationByShortName(ts *tables.TableStore, shortName string) (string, bool) {
	rows := ts.MustTable(configdb.TableOrganizations).Find(tables.Row{"short_name": shortName})
	if len(rows) == 0 {
		m.Ui.Error(fmt.Sprintf("No organization with short name %s found.", shortName))
		return "", false
	}
	return cellString(rows[0]["organization_name"]), true
}

// ProductAddCommand is a Command implementation that adds a product.
type ProductAddCommand struct {
	Meta
}

func (c *ProductAddCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseProductAdd(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("product add")
		return cli.RunResultHelp
	}
	shortName, err := configdb.ValidateProductName(args.Name)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}

	ctx := c.CommandContext()
	return c.withLocalConfig(ctx, func(ts *tables.TableStore, _ string) int {
		org, ok := c.organizationByShortName(ts, shortName)
		if !ok {
			return 1
		}
		row := tables.Row{"organization_name": org, "product_name": args.Name}
		return c.addEntry(ctx, ts, productEntity, row, args.Edit)
	})
}

func (c *ProductAddCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] product add [options] NAME

  Add a product. NAME is 3 to 35 lower case letters, digits and dashes, and
  is prefixed with the short name of its organization and a dash.

Options:

  -edit, -e   Open the new entry in an editor before adding it.
`
	return strings.TrimSpace(helpText)
}

func (c *ProductAddCommand) Synopsis() string {
	return "Add a product"
}

// TenantAddCommand is a Command implementation that reserves a tenant
// name for a product.
type TenantAddCommand struct {
	Meta
}

func (c *TenantAddCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseTenantAdd(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("tenant add")
		return cli.RunResultHelp
	}
	if args.Edit {
		c.Ui.Error("Editing tier and deployable details is not supported. Don't use the -edit option.")
		return 1
	}
	shortName, err := configdb.ValidateTenantName(args.Name)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}

	ctx := c.CommandContext()
	return c.withLocalConfig(ctx, func(ts *tables.TableStore, _ string) int {
		org, ok := c.organizationByShortName(ts, shortName)
		if !ok {
			return 1
		}
		if _, ok := ts.MustTable(configdb.TableProducts).Get(tables.Row{"product_name": args.Product}); !ok {
			c.Ui.Error(fmt.Sprintf("No product named %s found.", args.Product))
			return 1
		}

		c.Ui.Output(fmt.Sprintf("Creating tenant %s for product %s.", args.Name, args.Product))
		return c.addEntry(ctx, ts, tenantEntity, c.reservation(args.Name, org, args.Product), false)
	})
}

// reservation returns the tenant-names row reserving a tenant name for the
// current user.
func (m *Meta) reservation(tenant, organization, product string) tables.Row {
	return tables.Row{
		"tenant_name":       tenant,
		"organization_name": organization,
		"product_name":      product,
		"reserved_by":       m.username(),
		"reserved_at":       m.now().UTC().Format(time.RFC3339),
	}
}

func (c *TenantAddCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] tenant add NAME PRODUCT

  Reserve the tenant name NAME for the product PRODUCT. NAME is 3 to 30
  lower case letters, digits and dashes, and is prefixed with the short
  name of its organization and a dash.
`
	return strings.TrimSpace(helpText)
}

func (c *TenantAddCommand) Synopsis() string {
	return "Add a tenant"
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}
