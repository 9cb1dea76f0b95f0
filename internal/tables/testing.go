// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"testing"
	"time"
)

// TestDefinition returns a small definition used by tests throughout the
// repository: "items" keyed by id, "owners" keyed by name which items may
// reference, "assignments" with a composite key and a single-row "settings"
// table.
func TestDefinition() *Definition {
	return MustDefinition(1,
		&TableDef{
			Name:       "items",
			PrimaryKey: []string{"id"},
			Fields: []Field{
				{Name: "id", Type: TypeInteger},
				{Name: "name", Type: TypeString},
				{Name: "owner", Type: TypeString, Optional: true},
				{Name: "tags", Type: TypeArray, Optional: true},
			},
			ForeignKeys: []ForeignKey{
				{Fields: []string{"owner"}, Table: "owners", RefFields: []string{"name"}},
			},
		},
		&TableDef{
			Name:       "owners",
			PrimaryKey: []string{"name"},
			Fields: []Field{
				{Name: "name", Type: TypeString},
				{Name: "active", Type: TypeBoolean, Default: true},
			},
		},
		&TableDef{
			Name:       "assignments",
			PrimaryKey: []string{"owner", "item_id"},
			Fields: []Field{
				{Name: "owner", Type: TypeString},
				{Name: "item_id", Type: TypeInteger},
				{Name: "since", Type: TypeDateTime, Optional: true},
			},
			ForeignKeys: []ForeignKey{
				{Fields: []string{"owner"}, Table: "owners", RefFields: []string{"name"}},
				{Fields: []string{"item_id"}, Table: "items", RefFields: []string{"id"}},
			},
		},
		&TableDef{
			Name:      "settings",
			SingleRow: true,
			Fields: []Field{
				{Name: "title", Type: TypeString},
			},
		},
	)
}

// TestTableStore returns a store of TestDefinition populated with a few
// consistent rows and with its metadata refreshed.
func TestTableStore(t testing.TB) *TableStore {
	t.Helper()

	ts := NewTableStore(TestDefinition(), DefaultOptions())
	mustAdd(t, ts, "owners", Row{"name": "alice"})
	mustAdd(t, ts, "owners", Row{"name": "bob", "active": false})
	mustAdd(t, ts, "items", Row{"id": 1, "name": "x", "owner": "alice"})
	mustAdd(t, ts, "items", Row{"id": 2, "name": "y", "tags": []string{"a", "b"}})
	mustAdd(t, ts, "assignments", Row{"owner": "bob", "item_id": 2, "since": "2024-05-01T12:00:00Z"})
	mustAdd(t, ts, "settings", Row{"title": "test"})
	ts.RefreshMetadata(testNow)
	return ts
}

var testNow = mustParseTime("2024-06-01T10:00:00Z")

func mustAdd(t testing.TB, ts *TableStore, table string, row Row) {
	t.Helper()
	if _, err := ts.MustTable(table).Add(row); err != nil {
		t.Fatalf("adding %v to %s: %s", row, table, err)
	}
}

func mustParseTime(s string) time.Time {
	ret, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ret
}
