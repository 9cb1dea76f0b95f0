// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"strings"
	"testing"

	"github.com/driftconfig/driftconfig/internal/terminal"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

func TestView_Diagnostics(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewView(streams)

	var diags tfdiags.Diagnostics
	diags = diags.Append(tfdiags.Sourceless(tfdiags.Warning, "Something odd", ""))
	diags = diags.Append(tfdiags.Sourceless(tfdiags.Error, "Something broke", ""))
	view.Diagnostics(diags)

	output := done(t)
	if got, want := strings.TrimSpace(output.Stdout()), "Warning: Something odd"; got != want {
		t.Errorf("wrong stdout\ngot:  %q\nwant: %q", got, want)
	}
	if got, want := strings.TrimSpace(output.Stderr()), "Error: Something broke"; got != want {
		t.Errorf("wrong stderr\ngot:  %q\nwant: %q", got, want)
	}
}

func TestView_DiagnosticsCompactWarnings(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	view := NewView(streams)
	view.Configure(true, true)

	var diags tfdiags.Diagnostics
	diags = diags.Append(tfdiags.WithAddress(tfdiags.Warning, "tiers[tier_name=DEVNORTH].colour", "Unknown field", "The field is not declared."))
	view.Diagnostics(diags)

	got := done(t).Stdout()
	for _, want := range []string{"Warnings:", "- Unknown field", "at tiers[tier_name=DEVNORTH].colour", "-verbose"} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "The field is not declared.") {
		t.Errorf("compact output includes the detail:\n%s", got)
	}
}

func TestView_HelpPrompt(t *testing.T) {
	streams, done := terminal.StreamsForTesting(t)
	NewView(streams).HelpPrompt("pull")

	got := done(t).Stderr()
	if want := "driftconfig pull --help"; !strings.Contains(got, want) {
		t.Errorf("output is missing %q:\n%s", want, got)
	}
}
