// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// Init represents the command-line arguments for the init command.
type Init struct {
	// Source is the backend URL of the origin to initialize from.
	Source string

	// IgnoreErrors loads the origin without integrity checks.
	IgnoreErrors bool
}

// ParseInit processes CLI arguments, returning an Init value and errors.
// If errors are encountered, an Init value is still returned representing
// the best effort interpretation of the arguments.
func ParseInit(args []string) (*Init, tfdiags.Diagnostics) {
	ret := &Init{}

	f := defaultFlagSet("init")
	f.BoolVarP(&ret.IgnoreErrors, "ignore-errors", "i", false, "ignore-errors")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the URL of the origin")
	ret.Source = nth(pos, 0)
	return ret, diags
}

// Pull represents the command-line arguments for the pull command.
type Pull struct {
	// Domain limits the pull to one local copy. All local copies are
	// pulled when it is empty.
	Domain string

	// Loop keeps pulling for the configured duration.
	Loop bool

	IgnoreIfModified bool
	Force            bool
}

// ParsePull processes CLI arguments, returning a Pull value and errors.
func ParsePull(args []string) (*Pull, tfdiags.Diagnostics) {
	ret := &Pull{}

	f := defaultFlagSet("pull")
	f.BoolVar(&ret.Loop, "loop", false, "loop")
	f.BoolVarP(&ret.IgnoreIfModified, "ignore-if-modified", "i", false, "ignore-if-modified")
	f.BoolVarP(&ret.Force, "force", "f", false, "force")

	pos, diags := parseArgs(f, args, 0, 1, "at most one argument: the domain to pull")
	ret.Domain = nth(pos, 0)
	return ret, diags
}

// Push represents the command-line arguments for the push command.
type Push struct {
	Domain string
	Force  bool
}

// ParsePush processes CLI arguments, returning a Push value and errors.
func ParsePush(args []string) (*Push, tfdiags.Diagnostics) {
	ret := &Push{}

	f := defaultFlagSet("push")
	f.BoolVarP(&ret.Force, "force", "f", false, "force")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the domain to push")
	ret.Domain = nth(pos, 0)
	return ret, diags
}

// Diff represents the command-line arguments for the diff command.
type Diff struct {
	Domain string

	// Details adds row level differences of every modified table.
	Details bool

	JSON bool
}

// ParseDiff processes CLI arguments, returning a Diff value and errors.
func ParseDiff(args []string) (*Diff, tfdiags.Diagnostics) {
	ret := &Diff{}

	f := defaultFlagSet("diff")
	f.BoolVarP(&ret.Details, "details", "d", false, "details")
	f.BoolVar(&ret.JSON, "json", false, "json")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the domain to compare with its origin")
	ret.Domain = nth(pos, 0)
	return ret, diags
}

// Copy represents the command-line arguments for the copy command.
type Copy struct {
	// Source is a backend URL, or "." for the default configuration.
	Source string
	Dest   string

	// Binary writes the destination in msgpack rather than JSON.
	Binary bool
}

// ParseCopy processes CLI arguments, returning a Copy value and errors.
func ParseCopy(args []string) (*Copy, tfdiags.Diagnostics) {
	ret := &Copy{}

	f := defaultFlagSet("copy")
	f.BoolVarP(&ret.Binary, "binary", "p", false, "binary")

	pos, diags := parseArgs(f, args, 2, 2, "exactly two arguments: the source and destination URLs")
	ret.Source = nth(pos, 0)
	ret.Dest = nth(pos, 1)
	return ret, diags
}

// Create represents the command-line arguments for the create command.
type Create struct {
	Domain      string
	Source      string
	DisplayName string
}

// ParseCreate processes CLI arguments, returning a Create value and errors.
func ParseCreate(args []string) (*Create, tfdiags.Diagnostics) {
	ret := &Create{}

	f := defaultFlagSet("create")
	f.StringVar(&ret.DisplayName, "display-name", "", "display-name")

	pos, diags := parseArgs(f, args, 2, 2, "exactly two arguments: the domain name and the URL of its origin")
	ret.Domain = nth(pos, 0)
	ret.Source = nth(pos, 1)
	return ret, diags
}

// Migrate represents the command-line arguments for the migrate command.
type Migrate struct {
	Domain string
}

// ParseMigrate processes CLI arguments, returning a Migrate value and
// errors.
func ParseMigrate(args []string) (*Migrate, tfdiags.Diagnostics) {
	ret := &Migrate{}

	f := defaultFlagSet("migrate")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the domain to migrate")
	ret.Domain = nth(pos, 0)
	return ret, diags
}

// Cache represents the command-line arguments for the cache command.
type Cache struct {
	// Domain selects the configuration, overriding the default one.
	Domain string

	// Tier limits the update to one tier. Tier names are upper case and
	// the value is converted accordingly by the command.
	Tier string
}

// ParseCache processes CLI arguments, returning a Cache value and errors.
func ParseCache(args []string) (*Cache, tfdiags.Diagnostics) {
	ret := &Cache{}

	f := defaultFlagSet("cache")
	f.StringVarP(&ret.Tier, "tier", "t", "", "tier")

	pos, diags := parseArgs(f, args, 0, 1, "at most one argument: the domain whose cache to update")
	ret.Domain = nth(pos, 0)
	return ret, diags
}

// Edit represents the command-line arguments for the edit command.
type Edit struct {
	Table string
}

// ParseEdit processes CLI arguments, returning an Edit value and errors.
func ParseEdit(args []string) (*Edit, tfdiags.Diagnostics) {
	ret := &Edit{}

	f := defaultFlagSet("edit")

	pos, diags := parseArgs(f, args, 1, 1, "exactly one argument: the name of the table to edit")
	ret.Table = nth(pos, 0)
	return ret, diags
}
