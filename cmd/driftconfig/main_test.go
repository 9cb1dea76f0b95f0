// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeEnvArgs(t *testing.T) {
	cases := map[string]struct {
		Args     []string
		Value    string
		Expected []string
		Err      bool
	}{
		"no env": {
			Args:     []string{"pull", "foo"},
			Expected: []string{"pull", "foo"},
		},
		"both env var and CLI": {
			Args:     []string{"pull", "foo"},
			Value:    "-force",
			Expected: []string{"pull", "-force", "foo"},
		},
		"global options before the command": {
			Args:     []string{"-nocheck", "-config-url", "dgnorth", "pull", "foo"},
			Value:    "-force -i",
			Expected: []string{"-nocheck", "-config-url", "dgnorth", "pull", "-force", "-i", "foo"},
		},
		"only env var": {
			Args:     []string{"diff"},
			Value:    "-details",
			Expected: []string{"diff", "-details"},
		},
		"no command": {
			Args:     []string{},
			Value:    "-verbose",
			Expected: []string{"-verbose"},
		},
		"single quoted strings": {
			Args:     []string{"create", "foo"},
			Value:    "-display-name 'bar baz'",
			Expected: []string{"create", "-display-name", "bar baz", "foo"},
		},
		"double quoted single quoted strings": {
			Args:     []string{"create", "foo"},
			Value:    `-display-name "'bar baz'"`,
			Expected: []string{"create", "-display-name", "'bar baz'", "foo"},
		},
		"unterminated quote": {
			Args:  []string{"pull"},
			Value: `-display-name "bar`,
			Err:   true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(EnvCLI, tc.Value)

			got, err := mergeEnvArgs(EnvCLI, tc.Args)
			if (err != nil) != tc.Err {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.Err {
				return
			}
			if diff := cmp.Diff(tc.Expected, got); diff != "" {
				t.Fatalf("wrong args\n%s", diff)
			}
		})
	}
}
