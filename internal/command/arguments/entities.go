// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"fmt"
	"strings"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// EntityInfo represents the command-line arguments for the info subcommand
// of the tier, organization, product and tenant commands.
type EntityInfo struct {
	// Name selects one entity to show in full. All entities are listed
	// when it is empty.
	Name string
}

// ParseEntityInfo processes CLI arguments of "<noun> info". The name can be
// given with -name or as the only positional argument. Tiers also accept
// -tier-name.
func ParseEntityInfo(noun string, args []string) (*EntityInfo, tfdiags.Diagnostics) {
	ret := &EntityInfo{}

	f := defaultFlagSet(noun + " info")
	f.StringVarP(&ret.Name, "name", "n", "", "name")
	if noun == "tier" {
		f.StringVarP(&ret.Name, "tier-name", "t", "", "tier-name")
	}

	pos, diags := parseArgs(f, args, 0, 1, fmt.Sprintf("at most one argument: the name of the %s to show", noun))
	if ret.Name == "" {
		ret.Name = nth(pos, 0)
	}
	return ret, diags
}

// EntityEdit represents the command-line arguments for the edit subcommand
// of the tier, organization, product and tenant commands.
type EntityEdit struct {
	Name string
}

// ParseEntityEdit processes CLI arguments of "<noun> edit".
func ParseEntityEdit(noun string, args []string) (*EntityEdit, tfdiags.Diagnostics) {
	ret := &EntityEdit{}

	f := defaultFlagSet(noun + " edit")

	pos, diags := parseArgs(f, args, 1, 1, fmt.Sprintf("exactly one argument: the name of the %s to edit", noun))
	ret.Name = nth(pos, 0)
	return ret, diags
}

// TierAdd represents the command-line arguments for "tier add".
type TierAdd struct {
	Name   string
	IsLive bool

	// Edit opens the new row in an editor before it is added.
	Edit bool
}

// ParseTierAdd processes CLI arguments of "tier add". A tier is live unless
// -is-dev is given.
func ParseTierAdd(args []string) (*TierAdd, tfdiags.Diagnostics) {
	ret := &TierAdd{}
	var isLive, isDev bool

	f := defaultFlagSet("tier add")
	f.BoolVar(&isLive, "is-live", false, "is-live")
	f.BoolVar(&isDev, "is-dev", false, "is-dev")
	f.BoolVarP(&ret.Edit, "edit", "e", false, "edit")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the name of the tier")
	ret.Name = nth(pos, 0)
	ret.IsLive = !isDev
	if isLive && isDev {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Invalid tier flags",
			"The -is-live and -is-dev options are mutually exclusive.",
		))
	}
	return ret, diags
}

// OrganizationAdd represents the command-line arguments for
// "organization add".
type OrganizationAdd struct {
	Name        string
	ShortName   string
	DisplayName string
	Edit        bool
}

// ParseOrganizationAdd processes CLI arguments of "organization add".
func ParseOrganizationAdd(args []string) (*OrganizationAdd, tfdiags.Diagnostics) {
	ret := &OrganizationAdd{}

	f := defaultFlagSet("organization add")
	f.StringVarP(&ret.DisplayName, "display-name", "d", "", "display-name")
	f.BoolVarP(&ret.Edit, "edit", "e", false, "edit")

	pos, diags := parseArgs(f, args, 2, 2, "exactly two arguments: the organization name and short name")
	ret.Name = nth(pos, 0)
	ret.ShortName = nth(pos, 1)
	return ret, diags
}

// ProductAdd represents the command-line arguments for "product add".
type ProductAdd struct {
	Name string
	Edit bool
}

// ParseProductAdd processes CLI arguments of "product add".
func ParseProductAdd(args []string) (*ProductAdd, tfdiags.Diagnostics) {
	ret := &ProductAdd{}

	f := defaultFlagSet("product add")
	f.BoolVarP(&ret.Edit, "edit", "e", false, "edit")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the name of the product")
	ret.Name = nth(pos, 0)
	return ret, diags
}

// TenantAdd represents the command-line arguments for "tenant add".
type TenantAdd struct {
	Name    string
	Product string
	Edit    bool
}

// ParseTenantAdd processes CLI arguments of "tenant add".
func ParseTenantAdd(args []string) (*TenantAdd, tfdiags.Diagnostics) {
	ret := &TenantAdd{}

	f := defaultFlagSet("tenant add")
	f.BoolVarP(&ret.Edit, "edit", "e", false, "edit")

	pos, diags := parseArgs(f, args, 2, 2, "exactly two arguments: the tenant name and the product it belongs to")
	ret.Name = nth(pos, 0)
	ret.Product = nth(pos, 1)
	return ret, diags
}

// DeployableRegister represents the command-line arguments for
// "deployable register".
type DeployableRegister struct {
	// Name is the plugin to register, or "all".
	Name string

	// Tiers are the tiers to assign the deployable to. "all" selects every
	// tier.
	Tiers []string
}

// ParseDeployableRegister processes CLI arguments of "deployable register".
func ParseDeployableRegister(args []string) (*DeployableRegister, tfdiags.Diagnostics) {
	ret := &DeployableRegister{}

	f := defaultFlagSet("deployable register")
	f.StringArrayVarP(&ret.Tiers, "tier", "t", nil, "tier")

	pos, diags := parseArgs(f, args, 1, 1, `exactly one argument: the name of the plugin to register, or "all"`)
	ret.Name = nth(pos, 0)
	return ret, diags
}

// AddTenant represents the command-line arguments for the addtenant
// command.
type AddTenant struct {
	Domain       string
	Name         string
	Tier         string
	Organization string
	Product      string
	Deployables  []string

	// Preview prints the new rows without saving them.
	Preview bool
}

// ParseAddTenant processes CLI arguments of the addtenant command.
func ParseAddTenant(args []string) (*AddTenant, tfdiags.Diagnostics) {
	ret := &AddTenant{}

	f := defaultFlagSet("addtenant")
	f.StringVarP(&ret.Name, "name", "n", "", "name")
	f.StringVarP(&ret.Tier, "tier", "t", "", "tier")
	f.StringVarP(&ret.Organization, "organization", "o", "", "organization")
	f.StringVarP(&ret.Product, "product", "p", "", "product")
	f.StringSliceVarP(&ret.Deployables, "deployables", "d", nil, "deployables")
	f.BoolVar(&ret.Preview, "preview", false, "preview")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the domain to add the tenant to")
	ret.Domain = nth(pos, 0)
	if diags.HasErrors() {
		return ret, diags
	}

	var missing []string
	for _, name := range []string{"name", "tier", "organization", "product"} {
		if !f.Changed(name) {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Missing required options",
			fmt.Sprintf("The addtenant command requires %s.", strings.Join(missing, ", ")),
		))
	}
	return ret, diags
}
