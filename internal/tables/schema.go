// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"fmt"
	"sort"
)

// FieldType is the semantic type of a field, checked against the normalized
// value of the field when integrity checking is enabled.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeDateTime FieldType = "datetime"
	TypeArray    FieldType = "array"
	TypeObject   FieldType = "object"
	TypeAny      FieldType = "any"
)

// Field declares one column of a table.
type Field struct {
	Name     string
	Type     FieldType
	Optional bool

	// Default, when non-nil, is filled in by Table.Add and Table.Update for
	// rows that do not set the field.
	Default any
}

// ForeignKey declares that the values of Fields in every row must match the
// values of RefFields in some row of Table. When RefFields is empty it is
// taken to be the same as Fields. A row whose foreign key fields are all
// unset does not reference anything.
type ForeignKey struct {
	Fields    []string
	Table     string
	RefFields []string
}

func (fk ForeignKey) refFields() []string {
	if len(fk.RefFields) == 0 {
		return fk.Fields
	}
	return fk.RefFields
}

// TableDef is the schema of a single table.
type TableDef struct {
	Name        string
	PrimaryKey  []string
	Fields      []Field
	ForeignKeys []ForeignKey

	// SingleRow tables, such as the domain table, hold at most one row and
	// need no primary key.
	SingleRow bool
}

// Field returns the declaration of the named field.
func (td *TableDef) Field(name string) (Field, bool) {
	for _, f := range td.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Definition is the full schema of a table store: the set of tables it holds
// and the version of that set, which is recorded in the store's metadata.
type Definition struct {
	Version int
	tables  map[string]*TableDef
	names   []string
}

// NewDefinition validates the given table definitions and returns them as a
// Definition. Inconsistencies in a definition are programming errors, so
// callers with a static definition will usually wrap this in MustDefinition.
func NewDefinition(version int, defs ...*TableDef) (*Definition, error) {
	ret := &Definition{
		Version: version,
		tables:  make(map[string]*TableDef, len(defs)),
	}
	for _, td := range defs {
		if td.Name == "" {
			return nil, fmt.Errorf("table definition without a name")
		}
		if _, exists := ret.tables[td.Name]; exists {
			return nil, fmt.Errorf("table %q is defined more than once", td.Name)
		}
		if len(td.PrimaryKey) == 0 && !td.SingleRow {
			return nil, fmt.Errorf("table %q: %w", td.Name, ErrNoPrimaryKey)
		}
		for _, name := range td.PrimaryKey {
			if _, ok := td.Field(name); !ok {
				return nil, fmt.Errorf("table %q: primary key field %q is not declared", td.Name, name)
			}
		}
		ret.tables[td.Name] = td
		ret.names = append(ret.names, td.Name)
	}
	sort.Strings(ret.names)

	for _, td := range defs {
		for _, fk := range td.ForeignKeys {
			ref, ok := ret.tables[fk.Table]
			if !ok {
				return nil, fmt.Errorf("table %q: foreign key references %w", td.Name, &UnknownTableError{Name: fk.Table})
			}
			if len(fk.Fields) == 0 || len(fk.Fields) != len(fk.refFields()) {
				return nil, fmt.Errorf("table %q: foreign key to %q has mismatched field lists", td.Name, fk.Table)
			}
			for _, name := range fk.Fields {
				if _, ok := td.Field(name); !ok {
					return nil, fmt.Errorf("table %q: foreign key field %q is not declared", td.Name, name)
				}
			}
			for _, name := range fk.refFields() {
				if _, ok := ref.Field(name); !ok {
					return nil, fmt.Errorf("table %q: foreign key field %q is not declared in %q", td.Name, name, fk.Table)
				}
			}
		}
	}

	return ret, nil
}

// MustDefinition is like NewDefinition but panics on error.
func MustDefinition(version int, defs ...*TableDef) *Definition {
	def, err := NewDefinition(version, defs...)
	if err != nil {
		panic(err)
	}
	return def
}

// Table returns the definition of the named table.
func (d *Definition) Table(name string) (*TableDef, bool) {
	td, ok := d.tables[name]
	return td, ok
}

// TableNames returns the names of all defined tables in lexical order.
func (d *Definition) TableNames() []string {
	return append([]string(nil), d.names...)
}
