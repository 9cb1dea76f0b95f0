// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package configdb

import (
	"testing"

	"github.com/driftconfig/driftconfig/internal/tables"
)

// TestTableStore returns a small, consistent Drift configuration database
// for the domain "dgnorth" with origin origin.
func TestTableStore(t testing.TB, origin string) *tables.TableStore {
	t.Helper()

	ts := NewTableStore(tables.DefaultOptions())
	if err := SetDomain(ts, Domain{Name: "dgnorth", DisplayName: "Directive Games North", Origin: origin}); err != nil {
		t.Fatal(err)
	}
	add := func(table string, row tables.Row) {
		t.Helper()
		if _, err := ts.MustTable(table).Add(row); err != nil {
			t.Fatalf("adding %v to %s: %s", row, table, err)
		}
	}
	add(TableOrganizations, tables.Row{"organization_name": "directivegames", "short_name": "dg"})
	add(TableTiers, tables.Row{"tier_name": "LIVENORTH"})
	add(TableTiers, tables.Row{"tier_name": "DEVNORTH", "is_live": false, "cache_url": "redis://cache.devnorth.example.com/?prefix=dgnorth"})
	add(TableDeployableNames, tables.Row{"deployable_name": "drift-base", "display_name": "Drift base services"})
	add(TableDeployables, tables.Row{"tier_name": "DEVNORTH", "deployable_name": "drift-base", "is_active": true})
	add(TableRouting, tables.Row{"deployable_name": "drift-base", "api": "drift"})
	add(TableProducts, tables.Row{"product_name": "dg-superkaiju", "organization_name": "directivegames"})
	add(TableTenantNames, tables.Row{"tenant_name": "dg-superkaiju-dev", "organization_name": "directivegames", "product_name": "dg-superkaiju"})
	add(TableTenants, tables.Row{"tier_name": "DEVNORTH", "deployable_name": "drift-base", "tenant_name": "dg-superkaiju-dev"})

	if err := ts.CheckIntegrity(); err != nil {
		t.Fatal(err)
	}
	return ts
}
