// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"fmt"
	"time"
)

// Options are the settings a TableStore and its tables are created with.
type Options struct {
	// CheckIntegrity enables validation of rows against their table schema
	// and of foreign key references. Bulk operations such as migrations may
	// disable it.
	CheckIntegrity bool
}

// DefaultOptions returns the options used when nothing overrides them.
func DefaultOptions() Options {
	return Options{CheckIntegrity: true}
}

// TableStore is a set of named tables, one for each table of its
// Definition, plus the metadata describing them.
type TableStore struct {
	def    *Definition
	opts   Options
	tables map[string]*Table
	meta   Meta
}

// NewTableStore returns a store with an empty table for every table in def.
func NewTableStore(def *Definition, opts Options) *TableStore {
	ts := &TableStore{
		def:    def,
		opts:   opts,
		tables: make(map[string]*Table, len(def.names)),
	}
	for _, name := range def.names {
		ts.tables[name] = newTable(def.tables[name], opts)
	}
	return ts
}

// Definition returns the definition the store was created from.
func (ts *TableStore) Definition() *Definition {
	return ts.def
}

// Options returns the options the store was created with.
func (ts *TableStore) Options() Options {
	return ts.opts
}

// GetTable returns the named table, or an UnknownTableError if the store's
// definition does not declare it.
func (ts *TableStore) GetTable(name string) (*Table, error) {
	t, ok := ts.tables[name]
	if !ok {
		return nil, &UnknownTableError{Name: name}
	}
	return t, nil
}

// MustTable is like GetTable but panics for an unknown table. It is meant
// for callers that name tables from the same static definition the store
// was created with.
func (ts *TableStore) MustTable(name string) *Table {
	t, err := ts.GetTable(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TableNames returns the names of the store's tables in lexical order.
func (ts *TableStore) TableNames() []string {
	return ts.def.TableNames()
}

// LoadRows replaces the content of the named table with rows read from
// storage. Rows are not validated here; call CheckIntegrity once every table
// has been loaded.
func (ts *TableStore) LoadRows(name string, rows []Row) error {
	t, err := ts.GetTable(name)
	if err != nil {
		return err
	}
	t.Clear()
	return t.load(rows)
}

// Meta returns a copy of the metadata currently installed in the store. It
// reflects the table contents as of the last call to RefreshMetadata or
// SetMeta, not necessarily the current contents.
func (ts *TableStore) Meta() Meta {
	return ts.meta.Copy()
}

// SetMeta installs a metadata record, typically the one read from storage
// along with the tables.
func (ts *TableStore) SetMeta(meta Meta) {
	ts.meta = meta.Copy()
}

// SetBaseChecksum records the checksum of the origin store as last observed
// by this copy.
func (ts *TableStore) SetBaseChecksum(checksum string) {
	ts.meta.BaseChecksum = checksum
}

// SetLineage records the lineage of the store.
func (ts *TableStore) SetLineage(lineage string) {
	ts.meta.Lineage = lineage
}

// TableChecksums computes the current checksum of every table.
func (ts *TableStore) TableChecksums() map[string]string {
	ret := make(map[string]string, len(ts.tables))
	for name, t := range ts.tables {
		ret[name] = t.Checksum()
	}
	return ret
}

// Checksum computes the checksum of the store's current content without
// touching the installed metadata.
func (ts *TableStore) Checksum() string {
	return StoreChecksum(ts.TableChecksums())
}

// RefreshMetadata recomputes the metadata from the current table contents,
// installs it and returns both the previously installed record and the new
// one. Table timestamps advance only for tables whose checksum changed, and
// the store's LastModified only when the store checksum changed, so that
// refreshing an unchanged store is a no-op.
func (ts *TableStore) RefreshMetadata(now time.Time) (prev, next Meta) {
	now = now.UTC()
	prev = ts.meta.Copy()
	next = Meta{
		TableChecksums:    ts.TableChecksums(),
		TableTimestamps:   make(map[string]time.Time, len(ts.tables)),
		BaseChecksum:      prev.BaseChecksum,
		Lineage:           prev.Lineage,
		DefinitionVersion: ts.def.Version,
	}
	for name, checksum := range next.TableChecksums {
		stamp, ok := prev.TableTimestamps[name]
		if !ok || stamp.IsZero() || prev.TableChecksums[name] != checksum {
			stamp = now
		}
		next.TableTimestamps[name] = stamp
	}
	next.Checksum = StoreChecksum(next.TableChecksums)
	if next.Checksum == prev.Checksum && !prev.LastModified.IsZero() {
		next.LastModified = prev.LastModified
	} else {
		next.LastModified = now
	}

	ts.meta = next
	return prev, next.Copy()
}

// IsModified reports whether the store's content differs from the last
// snapshot taken from origin. Without a recorded base checksum the
// installed metadata stands in for it.
func (ts *TableStore) IsModified() bool {
	reference := ts.meta.BaseChecksum
	if reference == "" {
		reference = ts.meta.Checksum
	}
	return reference != ts.Checksum()
}

// Clone returns a deep copy of the store.
func (ts *TableStore) Clone() *TableStore {
	ret := NewTableStore(ts.def, ts.opts)
	for name, t := range ts.tables {
		if err := ret.tables[name].load(t.rows); err != nil {
			// The source table already satisfied every check load makes.
			panic(fmt.Sprintf("cloning table %q: %s", name, err))
		}
	}
	ret.meta = ts.meta.Copy()
	return ret
}
