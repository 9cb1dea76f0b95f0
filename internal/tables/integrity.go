// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"fmt"
	"time"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// CheckIntegrity validates every row against its table's schema and checks
// that every foreign key reference resolves. It returns an *IntegrityError
// listing every problem found, or nil. When the store was created with
// integrity checking disabled it does nothing.
func (ts *TableStore) CheckIntegrity() error {
	if !ts.opts.CheckIntegrity {
		return nil
	}
	diags := ts.Validate()
	if diags.HasErrors() {
		return &IntegrityError{Diags: diags}
	}
	return nil
}

// Validate runs the same checks as CheckIntegrity regardless of the store's
// options and returns the findings, warnings included.
func (ts *TableStore) Validate() tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics

	for _, name := range ts.def.names {
		t := ts.tables[name]
		rows, keys := t.sorted()
		for i, row := range rows {
			diags = diags.Append(validateRow(t.def, keys[i], row))
			diags = diags.Append(ts.validateReferences(t.def, keys[i], row))
		}
	}

	return diags
}

func (ts *TableStore) validateReferences(def *TableDef, key Key, row Row) tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics

	for _, fk := range def.ForeignKeys {
		criteria := make(Row, len(fk.Fields))
		unset := true
		for i, name := range fk.Fields {
			v := row[name]
			if v != nil {
				unset = false
			}
			criteria[fk.refFields()[i]] = v
		}
		if unset {
			continue
		}

		ref := ts.tables[fk.Table]
		found := false
		for _, candidate := range ref.rows {
			if candidate.Matches(criteria) {
				found = true
				break
			}
		}
		if !found {
			diags = diags.Append(tfdiags.WithAddress(
				tfdiags.Error,
				rowAddress(def, key),
				"Dangling reference",
				fmt.Sprintf("No row in table %q matches %s.", fk.Table, formatCriteria(fk.refFields(), criteria)),
			))
		}
	}

	return diags
}

func validateRow(def *TableDef, key Key, row Row) tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics
	addr := rowAddress(def, key)

	for _, f := range def.Fields {
		v, set := row[f.Name]
		if !set || v == nil {
			if !f.Optional {
				diags = diags.Append(tfdiags.WithAddress(
					tfdiags.Error,
					addr+"."+f.Name,
					"Missing required field",
					fmt.Sprintf("Field %q of table %q must be set.", f.Name, def.Name),
				))
			}
			continue
		}
		if !valueHasType(v, f.Type) {
			diags = diags.Append(tfdiags.WithAddress(
				tfdiags.Error,
				addr+"."+f.Name,
				"Incorrect field type",
				fmt.Sprintf("Field %q of table %q must be of type %s, got %#v.", f.Name, def.Name, f.Type, v),
			))
		}
	}

	for _, name := range row.Fields() {
		if _, ok := def.Field(name); !ok {
			diags = diags.Append(tfdiags.WithAddress(
				tfdiags.Warning,
				addr+"."+name,
				"Unknown field",
				fmt.Sprintf("Table %q does not declare a field named %q.", def.Name, name),
			))
		}
	}

	return diags
}

func valueHasType(v any, typ FieldType) bool {
	switch typ {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		f, ok := v.(float64)
		return ok && f == float64(int64(f))
	case TypeNumber:
		_, ok := v.(float64)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeDateTime:
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	case TypeAny, "":
		return true
	default:
		return false
	}
}

func rowAddress(def *TableDef, key Key) string {
	if def.SingleRow {
		return def.Name
	}
	return fmt.Sprintf("%s[%s]", def.Name, key)
}

func formatCriteria(fields []string, criteria Row) string {
	k := Key{fields: fields, values: make([]any, len(fields))}
	for i, name := range fields {
		k.values[i] = criteria[name]
	}
	return k.String()
}
