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
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

// CacheCommand is a Command implementation that writes a configuration
// database to the cache of every tier that has one.
type CacheCommand struct {
	Meta
}

func (c *CacheCommand) Run(rawArgs []string) int {
	args, diags := arguments.ParseCache(rawArgs)
	if diags.HasErrors() {
		c.showDiagnostics(diags)
		c.View.HelpPrompt("cache")
		return cli.RunResultHelp
	}

	ctx := c.CommandContext()
	if args.Domain != "" {
		c.ConfigURL = args.Domain
	}
	def, err := c.defaultConfig(ctx)
	if err != nil {
		c.showDiagnostics(err)
		return 1
	}
	ts := def.TableStore
	c.Ui.Output(fmt.Sprintf("Updating cache for '%s' - %s", def.Domain.Name, def.Domain.Origin))

	tier := strings.ToUpper(args.Tier)
	colorize := c.View.Colorize()
	ret := 0
	for _, row := range ts.MustTable(configdb.TableTiers).Rows() {
		name, _ := row["tier_name"].(string)
		if tier != "" && tier != name {
			continue
		}
		prefix := colorize.Color(fmt.Sprintf("[bold]%s:[reset] ", name))

		cacheURL, _ := row["cache_url"].(string)
		if cacheURL == "" {
			c.Ui.Output(prefix + colorize.Color("[red]No cache resource defined for this tier.[reset]"))
			continue
		}

		store, err := c.originStore(ctx, cacheURL)
		if err == nil {
			// A cache is a snapshot for readers, not a working copy.
			cached := ts.Clone()
			cached.SetBaseChecksum("")
			store.Format = tablefile.Msgpack
			err = store.SaveTableStore(ctx, cached)
		}
		var unavailable *remote.BackendUnavailableError
		switch {
		case errors.As(err, &unavailable):
			c.Ui.Output(prefix + colorize.Color(fmt.Sprintf("[red][bold]Updating failed. VPN down? %s[reset]", err)))
			ret = 1
		case err != nil:
			c.Ui.Output(prefix)
			c.showDiagnostics(fmt.Errorf("updating the cache of %s: %w", name, err))
			ret = 1
		default:
			c.Ui.Output(prefix + fmt.Sprintf("Cache updated on %s.", cacheURL))
		}
	}
	return ret
}

func (c *CacheCommand) Help() string {
	helpText := `
Usage: driftconfig [global options] cache [options] [DOMAIN]

  Write the configuration database to the cache of every tier that has a
  cache_url. Services read their configuration from the cache of their
  tier. DOMAIN selects the configuration instead of the default one.

Options:

  -tier, -t TIER   Only update the cache of this tier.
`
	return strings.TrimSpace(helpText)
}

func (c *CacheCommand) Synopsis() string {
	return "Update the caches of the tiers"
}
