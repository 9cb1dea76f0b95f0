// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package configdb declares the tables of a Drift configuration database
// and the helpers that commands use to read and change them.
package configdb

import (
	"github.com/driftconfig/driftconfig/internal/tables"
)

// DefinitionVersion is the version of the table definition below. It is
// recorded in the metadata of every saved store and must be increased, with
// a matching entry in migrations, whenever a table or field is added.
const DefinitionVersion = 3

// Table names.
const (
	TableDomain          = "domain"
	TableOrganizations   = "organizations"
	TableTiers           = "tiers"
	TableDeployableNames = "deployable-names"
	TableDeployables     = "deployables"
	TableProducts        = "products"
	TableTenantNames     = "tenant-names"
	TableTenants         = "tenants"
	TableRouting         = "routing"
)

var definition = tables.MustDefinition(DefinitionVersion,
	&tables.TableDef{
		Name:      TableDomain,
		SingleRow: true,
		Fields: []tables.Field{
			{Name: "domain_name", Type: tables.TypeString},
			{Name: "display_name", Type: tables.TypeString, Default: ""},
			{Name: "origin", Type: tables.TypeString},
		},
	},
	&tables.TableDef{
		Name:       TableOrganizations,
		PrimaryKey: []string{"organization_name"},
		Fields: []tables.Field{
			{Name: "organization_name", Type: tables.TypeString},
			{Name: "short_name", Type: tables.TypeString},
			{Name: "display_name", Type: tables.TypeString, Optional: true},
			{Name: "state", Type: tables.TypeString, Default: "active"},
		},
	},
	&tables.TableDef{
		Name:       TableTiers,
		PrimaryKey: []string{"tier_name"},
		Fields: []tables.Field{
			{Name: "tier_name", Type: tables.TypeString},
			{Name: "is_live", Type: tables.TypeBoolean, Default: true},
			{Name: "state", Type: tables.TypeString, Default: "active"},
			{Name: "cache_url", Type: tables.TypeString, Optional: true},
		},
	},
	&tables.TableDef{
		Name:       TableDeployableNames,
		PrimaryKey: []string{"deployable_name"},
		Fields: []tables.Field{
			{Name: "deployable_name", Type: tables.TypeString},
			{Name: "display_name", Type: tables.TypeString, Optional: true},
			{Name: "tags", Type: tables.TypeArray, Optional: true},
		},
	},
	&tables.TableDef{
		Name:       TableDeployables,
		PrimaryKey: []string{"tier_name", "deployable_name"},
		Fields: []tables.Field{
			{Name: "tier_name", Type: tables.TypeString},
			{Name: "deployable_name", Type: tables.TypeString},
			{Name: "is_active", Type: tables.TypeBoolean, Default: false},
			{Name: "version", Type: tables.TypeString, Optional: true},
			{Name: "tags", Type: tables.TypeArray, Optional: true},
		},
		ForeignKeys: []tables.ForeignKey{
			{Fields: []string{"tier_name"}, Table: TableTiers},
			{Fields: []string{"deployable_name"}, Table: TableDeployableNames},
		},
	},
	&tables.TableDef{
		Name:       TableProducts,
		PrimaryKey: []string{"product_name"},
		Fields: []tables.Field{
			{Name: "product_name", Type: tables.TypeString},
			{Name: "organization_name", Type: tables.TypeString},
			{Name: "state", Type: tables.TypeString, Default: "active"},
			{Name: "deployables", Type: tables.TypeArray, Optional: true},
		},
		ForeignKeys: []tables.ForeignKey{
			{Fields: []string{"organization_name"}, Table: TableOrganizations},
		},
	},
	&tables.TableDef{
		Name:       TableTenantNames,
		PrimaryKey: []string{"tenant_name"},
		Fields: []tables.Field{
			{Name: "tenant_name", Type: tables.TypeString},
			{Name: "organization_name", Type: tables.TypeString},
			{Name: "product_name", Type: tables.TypeString},
			{Name: "reserved_by", Type: tables.TypeString, Optional: true},
			{Name: "reserved_at", Type: tables.TypeDateTime, Optional: true},
		},
		ForeignKeys: []tables.ForeignKey{
			{Fields: []string{"organization_name"}, Table: TableOrganizations},
			{Fields: []string{"product_name"}, Table: TableProducts},
		},
	},
	&tables.TableDef{
		Name:       TableTenants,
		PrimaryKey: []string{"tier_name", "deployable_name", "tenant_name"},
		Fields: []tables.Field{
			{Name: "tier_name", Type: tables.TypeString},
			{Name: "deployable_name", Type: tables.TypeString},
			{Name: "tenant_name", Type: tables.TypeString},
			{Name: "state", Type: tables.TypeString, Default: "initializing"},
		},
		ForeignKeys: []tables.ForeignKey{
			{Fields: []string{"tier_name"}, Table: TableTiers},
			{Fields: []string{"deployable_name"}, Table: TableDeployableNames},
			{Fields: []string{"tenant_name"}, Table: TableTenantNames},
		},
	},
	&tables.TableDef{
		Name:       TableRouting,
		PrimaryKey: []string{"deployable_name"},
		Fields: []tables.Field{
			{Name: "deployable_name", Type: tables.TypeString},
			{Name: "api", Type: tables.TypeString},
			{Name: "requires_api_key", Type: tables.TypeBoolean, Default: false},
		},
		ForeignKeys: []tables.ForeignKey{
			{Fields: []string{"deployable_name"}, Table: TableDeployableNames},
		},
	},
)

// Definition returns the definition of a Drift configuration database.
func Definition() *tables.Definition {
	return definition
}

// NewTableStore returns an empty Drift configuration database.
func NewTableStore(opts tables.Options) *tables.TableStore {
	return tables.NewTableStore(definition, opts)
}

// Join returns copies of the rows of master matching criteria, each
// extended with the fields of the row that the primary key of every other
// table finds in it. Fields already set are overwritten by later tables.
func Join(master *tables.Table, criteria tables.Row, others ...*tables.Table) []tables.Row {
	rows := master.Find(criteria)
	for _, row := range rows {
		for _, other := range others {
			if match, ok := other.Get(row); ok {
				for k, v := range match {
					row[k] = v
				}
			}
		}
	}
	return rows
}
