// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-version"

	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/plugins"
	"github.com/driftconfig/driftconfig/internal/tables"
)

func testPlugins(t *testing.T) plugins.Registry {
	t.Helper()
	r, err := plugins.NewRegistry(
		plugins.Deployable{
			Name:    "drift-base",
			Summary: "Drift base services",
			Version: version.Must(version.NewVersion("0.5.1")),
			Tags:    []string{"core"},
		},
		plugins.Deployable{Name: "themachines"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestDeployableInfoCommand(t *testing.T) {
	m, ui, done := testMeta(t)
	m.Plugins = testPlugins(t)
	testLocal(t, m)

	c := &DeployableInfoCommand{Meta: m}
	if code := c.Run(nil); code != 0 {
		t.Fatalf("bad: %d\n%s\n%s", code, ui.ErrorWriter.String(), done(t).Stderr())
	}
	assertContains(t, "stdout", done(t).Stdout(),
		"Deployables and api routes registered in config:",
		"drift-base",
		"Deployables registered as plugins on this machine:",
		"themachines (Plugin NOT registered in config DB!)",
		"version: 0.5.1",
		"summary: Drift base services",
		"Deployables assigned to tiers:",
		"DEVNORTH:",
	)
}

func TestDeployableInfoCommand_unknownDeployables(t *testing.T) {
	m, ui, done := testMeta(t)
	testLocal(t, m)

	c := &DeployableInfoCommand{Meta: m}
	if code := c.Run(nil); code != 0 {
		t.Fatalf("bad: %d\n%s\n%s", code, ui.ErrorWriter.String(), done(t).Stderr())
	}
	assertContains(t, "stdout", done(t).Stdout(),
		"  (none)",
		"registered in the config, but are not registered as plugins on this machine:\ndrift-base",
	)
}

func TestDeployableRegisterCommand(t *testing.T) {
	m, ui, done := testMeta(t)
	defer done(t)
	m.Plugins = testPlugins(t)
	testLocal(t, m)

	c := &DeployableRegisterCommand{Meta: m}
	if code := c.Run([]string{"-tier", "all", "drift-base"}); code != 0 {
		t.Fatalf("bad: %d\n%s", code, ui.ErrorWriter.String())
	}
	assertContains(t, "output", ui.OutputWriter.String(), "drift-base added/updated.", "Changes saved to")

	local := loadLocal(t, m)
	name, ok := local.MustTable(configdb.TableDeployableNames).Get(tables.Row{"deployable_name": "drift-base"})
	if !ok {
		t.Fatal("drift-base is not registered")
	}
	wantName := tables.Row{"deployable_name": "drift-base", "display_name": "Drift base services", "tags": []any{"core"}}
	if diff := cmp.Diff(wantName, name); diff != "" {
		t.Errorf("wrong deployable name\n%s", diff)
	}

	deployables := local.MustTable(configdb.TableDeployables)
	want := map[string]tables.Row{
		"LIVENORTH": {"tier_name": "LIVENORTH", "deployable_name": "drift-base", "is_active": true, "tags": []any{"core"}, "version": "0.5.1"},
		"DEVNORTH":  {"tier_name": "DEVNORTH", "deployable_name": "drift-base", "is_active": true, "tags": []any{"core"}},
	}
	for tier, wantRow := range want {
		row, ok := deployables.Get(tables.Row{"tier_name": tier, "deployable_name": "drift-base"})
		if !ok {
			t.Errorf("drift-base is not assigned to %s", tier)
			continue
		}
		if diff := cmp.Diff(wantRow, row); diff != "" {
			t.Errorf("wrong assignment to %s\n%s", tier, diff)
		}
	}
}

func TestDeployableRegisterCommand_unknownTier(t *testing.T) {
	m, ui, done := testMeta(t)
	defer done(t)
	m.Plugins = testPlugins(t)
	testLocal(t, m)

	c := &DeployableRegisterCommand{Meta: m}
	if code := c.Run([]string{"-t", "SOUTH", "themachines"}); code != 0 {
		t.Fatalf("bad: %d\n%s", code, ui.ErrorWriter.String())
	}
	assertContains(t, "errors", ui.ErrorWriter.String(), "No tier named SOUTH found.")

	name, ok := loadLocal(t, m).MustTable(configdb.TableDeployableNames).Get(tables.Row{"deployable_name": "themachines"})
	if !ok {
		t.Fatal("themachines is not registered")
	}
	if got := name["display_name"]; got != noDescription {
		t.Errorf("wrong display name %v", got)
	}
}

func TestDeployableRegisterCommand_notInstalled(t *testing.T) {
	m, ui, done := testMeta(t)
	defer done(t)
	testLocal(t, m)

	c := &DeployableRegisterCommand{Meta: m}
	if code := c.Run([]string{"all"}); code != 1 {
		t.Fatalf("wrong exit code %d", code)
	}
	assertContains(t, "errors", ui.ErrorWriter.String(), "No deployable plugin named all is installed.")
}
