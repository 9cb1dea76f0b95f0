// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDefinition(t *testing.T) {
	tests := map[string]struct {
		defs    []*TableDef
		wantErr string
	}{
		"valid": {
			defs: []*TableDef{
				{Name: "a", PrimaryKey: []string{"id"}, Fields: []Field{{Name: "id", Type: TypeString}}},
			},
		},
		"no primary key": {
			defs: []*TableDef{
				{Name: "a", Fields: []Field{{Name: "id", Type: TypeString}}},
			},
			wantErr: "primary key undefined",
		},
		"undeclared primary key field": {
			defs: []*TableDef{
				{Name: "a", PrimaryKey: []string{"nope"}, Fields: []Field{{Name: "id", Type: TypeString}}},
			},
			wantErr: `primary key field "nope" is not declared`,
		},
		"duplicate table": {
			defs: []*TableDef{
				{Name: "a", SingleRow: true},
				{Name: "a", SingleRow: true},
			},
			wantErr: "defined more than once",
		},
		"foreign key to unknown table": {
			defs: []*TableDef{
				{
					Name:        "a",
					PrimaryKey:  []string{"id"},
					Fields:      []Field{{Name: "id", Type: TypeString}},
					ForeignKeys: []ForeignKey{{Fields: []string{"id"}, Table: "b"}},
				},
			},
			wantErr: `unknown table "b"`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewDefinition(1, test.defs...)
			switch {
			case test.wantErr == "" && err != nil:
				t.Fatalf("unexpected error: %s", err)
			case test.wantErr != "" && err == nil:
				t.Fatalf("expected error containing %q", test.wantErr)
			case test.wantErr != "" && !strings.Contains(err.Error(), test.wantErr):
				t.Fatalf("wrong error %q; want it to contain %q", err, test.wantErr)
			}
		})
	}
}

func TestNewDefinition_unknownTableIsMatchable(t *testing.T) {
	_, err := NewDefinition(1, &TableDef{
		Name:        "a",
		PrimaryKey:  []string{"id"},
		Fields:      []Field{{Name: "id", Type: TypeString}},
		ForeignKeys: []ForeignKey{{Fields: []string{"id"}, Table: "b"}},
	})
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("wrong error %v; want ErrUnknownTable", err)
	}
}
