// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/terminal"
)

func TestView_Table(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewView(streams)

	view.Table([]string{"tier_name", "state", "is_live"}, []tables.Row{
		{"tier_name": "LIVENORTH", "state": "active", "is_live": true},
		{"tier_name": "DEVNORTH", "state": "active", "is_live": false},
	}, "  ")

	want := `  Tier Name   State    Is Live
  DEVNORTH    active   false
  LIVENORTH   active   true
`
	if diff := cmp.Diff(want, done(t).Stdout()); diff != "" {
		t.Errorf("wrong output\n%s", diff)
	}
}

func TestView_TableValues(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewView(streams)

	view.Table([]string{"deployable_name", "tags", "version"}, []tables.Row{
		{"deployable_name": "drift-base", "tags": []any{"core", "auth"}},
		{"deployable_name": "bad\x1bname", "version": float64(2)},
	}, "")

	want := `Deployable Name   Tags         Version
bad␛name                       2
drift-base        core, auth
`
	if diff := cmp.Diff(want, done(t).Stdout()); diff != "" {
		t.Errorf("wrong output\n%s", diff)
	}
}

func TestView_Row(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewView(streams)

	view.Row("Tier LIVENORTH", tables.Row{"tier_name": "LIVENORTH", "is_live": true})

	want := `Tier LIVENORTH:
{
    "is_live": true,
    "tier_name": "LIVENORTH"
}
`
	if diff := cmp.Diff(want, done(t).Stdout()); diff != "" {
		t.Errorf("wrong output\n%s", diff)
	}
}
