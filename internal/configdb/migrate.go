// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package configdb

import (
	"fmt"
	"log"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// migration brings a store saved with definition version Version-1 up to
// Version.
type migration struct {
	Version int
	Summary string
	Apply   func(ts *tables.TableStore) error
}

var migrations = []migration{
	{
		Version: 2,
		Summary: "Added the routing table",
		// Tables missing from storage are loaded empty.
		Apply: func(*tables.TableStore) error { return nil },
	},
	{
		Version: 3,
		Summary: "Added state and cache_url to tiers, state to organizations and products",
		Apply:   applyDefaults,
	},
}

// Migrate returns a copy of ts brought up to DefinitionVersion, starting
// from the definition version recorded in its metadata. The store must have
// been loaded with the current definition; missing tables should have been
// created empty.
//
// The returned diagnostics describe each migration applied, as warnings.
func Migrate(ts *tables.TableStore) (*tables.TableStore, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics

	from := ts.Meta().DefinitionVersion
	if from > DefinitionVersion {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Unsupported definition version",
			fmt.Sprintf("The configuration database was saved with definition version %d, but this version of driftconfig only supports up to %d. Upgrade driftconfig to use it.", from, DefinitionVersion),
		))
		return nil, diags
	}

	ret := ts.Clone()
	for _, m := range migrations {
		if m.Version <= from {
			continue
		}
		log.Printf("[INFO] configdb: migrating to definition version %d", m.Version)
		if err := m.Apply(ret); err != nil {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				fmt.Sprintf("Migration to definition version %d failed", m.Version),
				err.Error(),
			))
			return nil, diags
		}
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Warning,
			fmt.Sprintf("Migrated to definition version %d", m.Version),
			m.Summary+".",
		))
	}
	return ret, diags
}

// applyDefaults rewrites every row so that fields with a declared default
// are filled in.
func applyDefaults(ts *tables.TableStore) error {
	for _, name := range ts.TableNames() {
		t := ts.MustTable(name)
		for _, row := range t.Rows() {
			if _, err := t.Update(row); err != nil {
				return fmt.Errorf("table %q: %w", name, err)
			}
		}
	}
	return nil
}
