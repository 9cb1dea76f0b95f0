// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"fmt"

	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// Domains renders the local working copies for the list and info commands.
type Domains interface {
	Diagnostics(diags tfdiags.Diagnostics)

	// List prints one line per local copy.
	List(root string, infos []*domains.Info)

	// Info prints each local copy in detail, marking the default one.
	Info(root string, infos []*domains.Info, def *domains.Default)
}

func NewDomains(view *View) Domains {
	return &DomainsHuman{view: view}
}

type DomainsHuman struct {
	view *View
}

var _ Domains = (*DomainsHuman)(nil)

func (v *DomainsHuman) Diagnostics(diags tfdiags.Diagnostics) {
	v.view.Diagnostics(diags)
}

func (v *DomainsHuman) List(root string, infos []*domains.Info) {
	if len(infos) == 0 {
		_, _ = v.view.streams.Println(fmt.Sprintf("No Drift configuration found at %s", root))
		return
	}
	for _, info := range infos {
		_, _ = v.view.streams.Println(info.String())
	}
}

func (v *DomainsHuman) Info(root string, infos []*domains.Info, def *domains.Default) {
	if len(infos) == 0 {
		_, _ = v.view.streams.Println(fmt.Sprintf("No Drift configuration found in %s. Run \"driftconfig init\" or \"driftconfig create\" to remedy.", root))
		return
	}

	gotDefault := false
	for _, info := range infos {
		name := info.Domain.Name
		if def != nil && def.Domain.Name == name {
			name += " [DEFAULT]"
			gotDefault = true
		}
		_, _ = v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf("[bold]%s:[reset] [green]%q[reset]", name, info.Domain.DisplayName)))
		_, _ = v.view.streams.Println(fmt.Sprintf("\tOrigin: %s", info.Domain.Origin))
		_, _ = v.view.streams.Println(fmt.Sprintf("\tLocal: %s", info.Path))
		_, _ = v.view.streams.Println("")
	}

	switch {
	case !gotDefault:
		_, _ = v.view.streams.Println("Note: There is no default config specified!")
	case def.FromEnv:
		_, _ = v.view.streams.Println(fmt.Sprintf("The default config is specified using the %s environment variable or the --config-url option.", domains.ConfigURLEnvVar))
	default:
		_, _ = v.view.streams.Println(fmt.Sprintf("The config above is the default one as it's the only one stored locally in %s.", root))
	}
}
