// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/copystructure"
)

// Row is a single record of a table, keyed by field name.
type Row map[string]any

// NormalizeRow converts every value of the given row into the JSON value
// space, so that a row built in Go code, decoded from JSON or decoded from
// msgpack compares and hashes the same way.
func NormalizeRow(row Row) (Row, error) {
	if row == nil {
		return Row{}, nil
	}
	raw, err := json.Marshal(map[string]any(row))
	if err != nil {
		return nil, fmt.Errorf("row cannot be represented as JSON: %w", err)
	}
	var ret map[string]any
	if err := json.Unmarshal(raw, &ret); err != nil {
		return nil, fmt.Errorf("row cannot be represented as JSON: %w", err)
	}
	return Row(ret), nil
}

// Copy returns a deep copy of the row.
func (r Row) Copy() Row {
	if r == nil {
		return nil
	}
	return copystructure.Must(copystructure.Copy(r)).(Row)
}

// Matches returns true if every field of criteria is present in the row with
// an equal value. Empty criteria match every row.
func (r Row) Matches(criteria Row) bool {
	for name, want := range criteria {
		got, ok := r[name]
		if !ok || !cmp.Equal(got, want) {
			return false
		}
	}
	return true
}

// Fields returns the names of the row's fields in lexical order.
func (r Row) Fields() []string {
	ret := make([]string, 0, len(r))
	for name := range r {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Key is the primary key of a row: the values of the primary key fields, in
// the order the table definition declares them.
type Key struct {
	fields []string
	values []any
}

// KeyOf extracts the primary key of row. It fails with ErrNoPrimaryKey when
// a primary key field is missing or null. Single-row tables have an empty
// key shared by every row.
func (td *TableDef) KeyOf(row Row) (Key, error) {
	ret := Key{
		fields: td.PrimaryKey,
		values: make([]any, len(td.PrimaryKey)),
	}
	for i, name := range td.PrimaryKey {
		v, ok := row[name]
		if !ok || v == nil {
			return Key{}, fmt.Errorf("%w: table %q row has no value for %q", ErrNoPrimaryKey, td.Name, name)
		}
		ret.values[i] = v
	}
	return ret, nil
}

// Values returns the key's field values.
func (k Key) Values() []any {
	return k.values
}

// Row returns the key as a partial row holding only the primary key fields.
func (k Key) Row() Row {
	ret := make(Row, len(k.fields))
	for i, name := range k.fields {
		ret[name] = k.values[i]
	}
	return ret
}

// String renders the key as comma separated name=value pairs.
func (k Key) String() string {
	parts := make([]string, len(k.fields))
	for i, name := range k.fields {
		parts[i] = fmt.Sprintf("%s=%v", name, k.values[i])
	}
	return strings.Join(parts, ",")
}

// MarshalJSON renders a single-field key as its bare value and a composite
// key as an object.
func (k Key) MarshalJSON() ([]byte, error) {
	if len(k.values) == 1 {
		return json.Marshal(k.values[0])
	}
	return json.Marshal(map[string]any(k.Row()))
}

// ID returns a string that is equal for two keys exactly when their
// values are equal.
func (k Key) ID() string {
	raw, err := json.Marshal(k.values)
	if err != nil {
		// Keys come from normalized rows, which always marshal.
		panic(fmt.Sprintf("unencodable primary key %v: %s", k.values, err))
	}
	return string(raw)
}

// Compare orders keys field by field. Numbers compare numerically and
// strings lexically; values of different kinds are ordered by kind.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k.values) && i < len(other.values); i++ {
		if c := compareValues(k.values[i], other.values[i]); c != 0 {
			return c
		}
	}
	return len(k.values) - len(other.values)
}

func compareValues(a, b any) int {
	if ka, kb := valueKind(a), valueKind(b); ka != kb {
		return ka - kb
	}
	switch av := a.(type) {
	case nil:
		return 0
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		return strings.Compare(av, b.(string))
	default:
		ra, _ := json.Marshal(a)
		rb, _ := json.Marshal(b)
		return strings.Compare(string(ra), string(rb))
	}
}

func valueKind(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	case []any:
		return 4
	default:
		return 5
	}
}
