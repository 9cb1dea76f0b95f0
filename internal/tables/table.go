// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"fmt"
	"log"
	"sort"
)

// Table is an ordered sequence of rows sharing a TableDef. Primary key values
// are unique within a table at all times.
//
// Rows handed to and returned from a Table are copies, so callers can never
// change a table's content except through its methods.
type Table struct {
	def  *TableDef
	opts Options

	rows  []Row
	index map[string]int
}

func newTable(def *TableDef, opts Options) *Table {
	return &Table{
		def:   def,
		opts:  opts,
		index: make(map[string]int),
	}
}

// Def returns the table's definition.
func (t *Table) Def() *TableDef {
	return t.def
}

// Name returns the name of the table.
func (t *Table) Name() string {
	return t.def.Name
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns copies of all rows in table order.
func (t *Table) Rows() []Row {
	return t.Find(nil)
}

// Find returns copies of the rows matching every field of criteria, in
// table order. Empty criteria match all rows.
func (t *Table) Find(criteria Row) []Row {
	if len(criteria) > 0 {
		norm, err := NormalizeRow(criteria)
		if err != nil {
			return nil
		}
		criteria = norm
	}
	var ret []Row
	for _, row := range t.rows {
		if row.Matches(criteria) {
			ret = append(ret, row.Copy())
		}
	}
	return ret
}

// Get returns a copy of the row whose primary key matches the primary key
// fields of key. Other fields of key are ignored.
func (t *Table) Get(key Row) (Row, bool) {
	norm, err := NormalizeRow(key)
	if err != nil {
		return nil, false
	}
	k, err := t.def.KeyOf(norm)
	if err != nil {
		return nil, false
	}
	pos, ok := t.index[k.ID()]
	if !ok {
		return nil, false
	}
	return t.rows[pos].Copy(), true
}

// Single returns the only row of a single-row table.
func (t *Table) Single() (Row, bool) {
	if len(t.rows) == 0 {
		return nil, false
	}
	return t.rows[0].Copy(), true
}

// Add inserts a row, failing with ErrDuplicateKey if a row with the same
// primary key exists. It returns a copy of the stored row, with defaults
// applied.
func (t *Table) Add(row Row) (Row, error) {
	stored, k, err := t.prepare(row)
	if err != nil {
		return nil, err
	}
	if _, exists := t.index[k.ID()]; exists {
		if t.def.SingleRow {
			return nil, fmt.Errorf("%w: table %q holds a single row", ErrDuplicateKey, t.def.Name)
		}
		return nil, fmt.Errorf("%w: %s already exists in table %q", ErrDuplicateKey, k, t.def.Name)
	}
	t.index[k.ID()] = len(t.rows)
	t.rows = append(t.rows, stored)
	return stored.Copy(), nil
}

// Update inserts a row or replaces the row with the same primary key,
// keeping the replaced row's position.
func (t *Table) Update(row Row) (Row, error) {
	stored, k, err := t.prepare(row)
	if err != nil {
		return nil, err
	}
	if pos, exists := t.index[k.ID()]; exists {
		t.rows[pos] = stored
	} else {
		t.index[k.ID()] = len(t.rows)
		t.rows = append(t.rows, stored)
	}
	return stored.Copy(), nil
}

// Remove deletes the row with the primary key of key, reporting whether
// there was one.
func (t *Table) Remove(key Row) bool {
	norm, err := NormalizeRow(key)
	if err != nil {
		return false
	}
	k, err := t.def.KeyOf(norm)
	if err != nil {
		return false
	}
	pos, ok := t.index[k.ID()]
	if !ok {
		return false
	}
	t.rows = append(t.rows[:pos], t.rows[pos+1:]...)
	t.reindex()
	return true
}

// Clear removes all rows.
func (t *Table) Clear() {
	t.rows = nil
	t.index = make(map[string]int)
}

// load appends rows read from storage. Rows are normalized and keyed but not
// validated; the store validates all tables together once they are loaded.
func (t *Table) load(rows []Row) error {
	for _, row := range rows {
		norm, err := NormalizeRow(row)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.def.Name, err)
		}
		k, err := t.def.KeyOf(norm)
		if err != nil {
			return err
		}
		if _, exists := t.index[k.ID()]; exists {
			return fmt.Errorf("%w: %s appears more than once in table %q", ErrDuplicateKey, k, t.def.Name)
		}
		t.index[k.ID()] = len(t.rows)
		t.rows = append(t.rows, norm)
	}
	return nil
}

func (t *Table) prepare(row Row) (Row, Key, error) {
	norm, err := NormalizeRow(row)
	if err != nil {
		return nil, Key{}, fmt.Errorf("table %q: %w", t.def.Name, err)
	}
	for _, f := range t.def.Fields {
		if _, set := norm[f.Name]; !set && f.Default != nil {
			def, err := NormalizeRow(Row{f.Name: f.Default})
			if err != nil {
				return nil, Key{}, fmt.Errorf("table %q: default for %q: %w", t.def.Name, f.Name, err)
			}
			norm[f.Name] = def[f.Name]
		}
	}
	k, err := t.def.KeyOf(norm)
	if err != nil {
		return nil, Key{}, err
	}
	if t.opts.CheckIntegrity {
		if diags := validateRow(t.def, k, norm); diags.HasErrors() {
			return nil, Key{}, &IntegrityError{Diags: diags}
		} else if len(diags) > 0 {
			log.Printf("[WARN] %s", diags.ErrWithWarnings())
		}
	}
	return norm, k, nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		k, _ := t.def.KeyOf(row)
		t.index[k.ID()] = i
	}
}

// sorted returns the table's rows, not copied, in primary key order.
func (t *Table) sorted() ([]Row, []Key) {
	rows := append([]Row(nil), t.rows...)
	keys := make([]Key, len(rows))
	for i, row := range rows {
		keys[i], _ = t.def.KeyOf(row)
	}
	sort.Sort(byKey{rows: rows, keys: keys})
	return rows, keys
}

// SortedRows returns copies of the table's rows in primary key order, with
// the key of each row.
func (t *Table) SortedRows() ([]Row, []Key) {
	rows, keys := t.sorted()
	for i := range rows {
		rows[i] = rows[i].Copy()
	}
	return rows, keys
}

type byKey struct {
	rows []Row
	keys []Key
}

func (b byKey) Len() int           { return len(b.rows) }
func (b byKey) Less(i, j int) bool { return b.keys[i].Compare(b.keys[j]) < 0 }
func (b byKey) Swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
