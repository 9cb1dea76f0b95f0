// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// checkDiags fails the test if diags do not match wantErrText: no
// diagnostics when it is empty, otherwise an error containing it.
func checkDiags(t *testing.T, diags tfdiags.Diagnostics, wantErrText string) {
	t.Helper()
	switch {
	case wantErrText != "" && len(diags) == 0:
		t.Errorf("test wanted error but got nothing")
	case wantErrText == "" && len(diags) > 0:
		t.Errorf("test didn't expect errors but got some: %s", diags.ErrWithWarnings())
	case wantErrText != "":
		errStr := diags.ErrWithWarnings().Error()
		if !strings.Contains(errStr, wantErrText) {
			t.Errorf("the returned diagnostics does not contain the expected error message.\ndiags:\n%s\nwanted: %s\n", errStr, wantErrText)
		}
	}
}

func TestParsePull(t *testing.T) {
	testCases := map[string]struct {
		args        []string
		want        *Pull
		wantErrText string
	}{
		"defaults": {
			args: nil,
			want: &Pull{},
		},
		"domain": {
			args: []string{"dgnorth"},
			want: &Pull{Domain: "dgnorth"},
		},
		"all flags": {
			args: []string{"-loop", "-ignore-if-modified", "--force", "dgnorth"},
			want: &Pull{Domain: "dgnorth", Loop: true, IgnoreIfModified: true, Force: true},
		},
		"shorthands": {
			args: []string{"dgnorth", "-i", "-f"},
			want: &Pull{Domain: "dgnorth", IgnoreIfModified: true, Force: true},
		},
		"too many domains": {
			args:        []string{"a", "b"},
			want:        &Pull{Domain: "a"},
			wantErrText: "Too many command line arguments",
		},
		"invalid flag": {
			args:        []string{"--foo"},
			want:        &Pull{},
			wantErrText: "Failed to parse command-line flags: unknown flag: --foo",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, diags := ParsePull(tc.args)
			checkDiags(t, diags, tc.wantErrText)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected result\n%s", diff)
			}
		})
	}
}

func TestParsePush(t *testing.T) {
	testCases := map[string]struct {
		args        []string
		want        *Push
		wantErrText string
	}{
		"domain": {
			args: []string{"dgnorth"},
			want: &Push{Domain: "dgnorth"},
		},
		"force": {
			args: []string{"-force", "dgnorth"},
			want: &Push{Domain: "dgnorth", Force: true},
		},
		"missing domain": {
			args:        nil,
			want:        &Push{},
			wantErrText: "Not enough arguments",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, diags := ParsePush(tc.args)
			checkDiags(t, diags, tc.wantErrText)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected result\n%s", diff)
			}
		})
	}
}

func TestParseDiff(t *testing.T) {
	got, diags := ParseDiff([]string{"dgnorth", "-d", "-json"})
	checkDiags(t, diags, "")
	want := &Diff{Domain: "dgnorth", Details: true, JSON: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}
}

func TestParseCopy(t *testing.T) {
	testCases := map[string]struct {
		args        []string
		want        *Copy
		wantErrText string
	}{
		"urls": {
			args: []string{".", "file:///tmp/copy"},
			want: &Copy{Source: ".", Dest: "file:///tmp/copy"},
		},
		"binary": {
			args: []string{"-binary", "s3://a/b", "redis://localhost/?prefix=b"},
			want: &Copy{Source: "s3://a/b", Dest: "redis://localhost/?prefix=b", Binary: true},
		},
		"pickle shorthand": {
			args: []string{"-p", "s3://a/b", "inmem://b"},
			want: &Copy{Source: "s3://a/b", Dest: "inmem://b", Binary: true},
		},
		"missing destination": {
			args:        []string{"."},
			want:        &Copy{Source: "."},
			wantErrText: "exactly two arguments",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, diags := ParseCopy(tc.args)
			checkDiags(t, diags, tc.wantErrText)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected result\n%s", diff)
			}
		})
	}
}

func TestParseCreate(t *testing.T) {
	got, diags := ParseCreate([]string{"dgnorth", "s3://bucket/dgnorth", "-display-name", "Directive Games North"})
	checkDiags(t, diags, "")
	want := &Create{Domain: "dgnorth", Source: "s3://bucket/dgnorth", DisplayName: "Directive Games North"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}
}

func TestParseInit(t *testing.T) {
	got, diags := ParseInit([]string{"-i", "s3://bucket/dgnorth"})
	checkDiags(t, diags, "")
	want := &Init{Source: "s3://bucket/dgnorth", IgnoreErrors: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}

	_, diags = ParseInit(nil)
	checkDiags(t, diags, "the URL of the origin")
}

func TestParseCache(t *testing.T) {
	got, diags := ParseCache([]string{"-tier", "devnorth"})
	checkDiags(t, diags, "")
	want := &Cache{Tier: "devnorth"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}
}

func TestParseMigrateAndEdit(t *testing.T) {
	m, diags := ParseMigrate([]string{"dgnorth"})
	checkDiags(t, diags, "")
	if m.Domain != "dgnorth" {
		t.Errorf("wrong domain %q", m.Domain)
	}

	e, diags := ParseEdit([]string{"tiers"})
	checkDiags(t, diags, "")
	if e.Table != "tiers" {
		t.Errorf("wrong table %q", e.Table)
	}

	_, diags = ParseEdit([]string{"tiers", "tenants"})
	checkDiags(t, diags, "Too many command line arguments")
}
