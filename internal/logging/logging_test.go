// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]struct {
		input    string
		want     hclog.Level
		wantJSON bool
	}{
		"unset":   {"", hclog.Off, false},
		"trace":   {"TRACE", hclog.Trace, false},
		"debug":   {"DEBUG", hclog.Debug, false},
		"warn":    {"WARN", hclog.Warn, false},
		"off":     {"OFF", hclog.Off, false},
		"json":    {"JSON", hclog.Trace, true},
		"invalid": {"LOUD", hclog.Trace, false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, gotJSON := parseLogLevel(test.input)
			if got != test.want {
				t.Errorf("wrong level\ngot:  %s\nwant: %s", got, test.want)
			}
			if gotJSON != test.wantJSON {
				t.Errorf("wrong json flag\ngot:  %t\nwant: %t", gotJSON, test.wantJSON)
			}
		})
	}
}

func TestNewLogger_named(t *testing.T) {
	l := NewLogger("backend-s3")
	if got, want := l.Name(), "backend-s3"; got != want {
		t.Fatalf("wrong name %q; want %q", got, want)
	}
}
