// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tablediff

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/driftconfig/driftconfig/internal/tables"
)

// ErrIncompatibleTables is returned when two tables being compared do not
// share a primary key definition.
var ErrIncompatibleTables = errors.New("tables have different primary keys")

// RowDiff describes a row present in both tables with differing fields.
type RowDiff struct {
	Key           tables.Key `json:"key"`
	Before        tables.Row `json:"before"`
	After         tables.Row `json:"after"`
	ChangedFields []string   `json:"changed_fields"`
}

// TableDiff is the row level difference between two versions of a table.
type TableDiff struct {
	Added    []tables.Row `json:"added"`
	Removed  []tables.Row `json:"removed"`
	Modified []RowDiff    `json:"modified"`
}

// Empty returns true if the two tables held the same rows.
func (d TableDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// DiffTables computes the row level difference from table a to table b.
// Rows are matched by primary key, so a row whose key is unchanged but whose
// fields differ is reported as modified rather than removed and added.
// Field values are compared by deep equality. Each list is in primary key
// order.
func DiffTables(a, b *tables.Table) (TableDiff, error) {
	if !slices.Equal(a.Def().PrimaryKey, b.Def().PrimaryKey) {
		return TableDiff{}, fmt.Errorf("%w: %v and %v", ErrIncompatibleTables, a.Def().PrimaryKey, b.Def().PrimaryKey)
	}

	ret := TableDiff{
		Added:    []tables.Row{},
		Removed:  []tables.Row{},
		Modified: []RowDiff{},
	}

	aRows, aKeys := a.SortedRows()
	bRows, bKeys := b.SortedRows()

	before := make(map[string]tables.Row, len(aRows))
	for i, row := range aRows {
		before[aKeys[i].ID()] = row
	}
	after := make(map[string]struct{}, len(bRows))

	for i, row := range bRows {
		id := bKeys[i].ID()
		after[id] = struct{}{}
		old, ok := before[id]
		if !ok {
			ret.Added = append(ret.Added, row)
			continue
		}
		if changed := changedFields(old, row); len(changed) > 0 {
			ret.Modified = append(ret.Modified, RowDiff{
				Key:           bKeys[i],
				Before:        old,
				After:         row,
				ChangedFields: changed,
			})
		}
	}
	for i, row := range aRows {
		if _, ok := after[aKeys[i].ID()]; !ok {
			ret.Removed = append(ret.Removed, row)
		}
	}

	return ret, nil
}

// changedFields lists the fields whose values differ between the two rows,
// including fields set on only one side, in lexical order.
func changedFields(a, b tables.Row) []string {
	var ret []string
	for name, av := range a {
		bv, ok := b[name]
		if !ok || !cmp.Equal(av, bv) {
			ret = append(ret, name)
		}
	}
	for name := range b {
		if _, ok := a[name]; !ok {
			ret = append(ret, name)
		}
	}
	sort.Strings(ret)
	return ret
}

// DiffStores computes a TableDiff for every table that either store holds,
// omitting tables without differences. Tables present in only one store are
// compared against an empty table.
func DiffStores(a, b *tables.TableStore) (map[string]TableDiff, error) {
	names := a.TableNames()
	for _, name := range b.TableNames() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	ret := make(map[string]TableDiff)
	for _, name := range names {
		ta, errA := a.GetTable(name)
		tb, errB := b.GetTable(name)
		switch {
		case errA != nil && errB != nil:
			continue
		case errA != nil:
			ta = emptyLike(tb)
		case errB != nil:
			tb = emptyLike(ta)
		}
		d, err := DiffTables(ta, tb)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		if !d.Empty() {
			ret[name] = d
		}
	}
	return ret, nil
}

func emptyLike(t *tables.Table) *tables.Table {
	td := *t.Def()
	td.ForeignKeys = nil
	def := tables.MustDefinition(0, &td)
	return tables.NewTableStore(def, tables.Options{}).MustTable(t.Name())
}
