// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/mitchellh/colorstring"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

func TestDiagnostic(t *testing.T) {
	tests := map[string]struct {
		Diag interface{}
		Want string
	}{
		"sourceless error": {
			tfdiags.Sourceless(
				tfdiags.Error,
				"A sourceless error",
				"It has no source references but it does have a pretty long detail that should wrap over multiple lines.",
			),
			`[red]╷[reset]
[red]│[reset] [bold][red]Error: [reset][bold]A sourceless error[reset]
[red]│[reset]
[red]│[reset] It has no source references but it
[red]│[reset] does have a pretty long detail that
[red]│[reset] should wrap over multiple lines.
[red]╵[reset]
`,
		},
		"sourceless warning": {
			tfdiags.Sourceless(
				tfdiags.Warning,
				"A sourceless warning",
				"It has no source references but it does have a pretty long detail that should wrap over multiple lines.",
			),
			`[yellow]╷[reset]
[yellow]│[reset] [bold][yellow]Warning: [reset][bold]A sourceless warning[reset]
[yellow]│[reset]
[yellow]│[reset] It has no source references but it
[yellow]│[reset] does have a pretty long detail that
[yellow]│[reset] should wrap over multiple lines.
[yellow]╵[reset]
`,
		},
		"error with an address": {
			tfdiags.WithAddress(
				tfdiags.Error,
				"tiers[tier_name=LIVENORTH]",
				"Dangling reference",
				"No row in organizations.",
			),
			`[red]╷[reset]
[red]│[reset] [bold][red]Error: [reset][bold]Dangling reference[reset]
[red]│[reset]
[red]│[reset]   at [bold]tiers[tier_name=LIVENORTH][reset]
[red]│[reset]
[red]│[reset] No row in organizations.
[red]╵[reset]
`,
		},
		"error with source code subject": {
			&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Bad bad bad",
				Detail:   "Whatever shall we do?",
				Subject: &hcl.Range{
					Filename: ".driftconfigrc",
					Start:    hcl.Pos{Line: 3, Column: 1, Byte: 20},
					End:      hcl.Pos{Line: 3, Column: 7, Byte: 26},
				},
			},
			`[red]╷[reset]
[red]│[reset] [bold][red]Error: [reset][bold]Bad bad bad[reset]
[red]│[reset]
[red]│[reset]   on .driftconfigrc line 3
[red]│[reset]
[red]│[reset] Whatever shall we do?
[red]╵[reset]
`,
		},
		"control characters in the summary": {
			tfdiags.Sourceless(
				tfdiags.Error,
				"Bad \x1b[1mvalue",
				"",
			),
			`[red]╷[reset]
[red]│[reset] [bold][red]Error: [reset][bold]Bad ␛[1mvalue[reset]
[red]│[reset]
[red]╵[reset]
`,
		},
	}

	// This empty Colorize just passes through all of the formatting codes
	// untouched, because it doesn't define any formatting keywords.
	colorize := &colorstring.Colorize{}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var diags tfdiags.Diagnostics
			diags = diags.Append(test.Diag) // to normalize it into a tfdiag.Diagnostic
			diag := diags[0]
			got := strings.TrimSpace(Diagnostic(diag, colorize, 40))
			want := strings.TrimSpace(test.Want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("diff:\n%s", diff)
			}
		})
	}
}

func TestDiagnosticPlain(t *testing.T) {
	tests := map[string]struct {
		Diag interface{}
		Want string
	}{
		"sourceless error": {
			tfdiags.Sourceless(
				tfdiags.Error,
				"A sourceless error",
				"It has no source references but it does have a pretty long detail that should wrap over multiple lines.",
			),
			`
Error: A sourceless error

It has no source references but it does
have a pretty long detail that should
wrap over multiple lines.
`,
		},
		"sourceless warning": {
			tfdiags.Sourceless(
				tfdiags.Warning,
				"A sourceless warning",
				"It has no source references but it does have a pretty long detail that should wrap over multiple lines.",
			),
			`
Warning: A sourceless warning

It has no source references but it does
have a pretty long detail that should
wrap over multiple lines.
`,
		},
		"warning with an address": {
			tfdiags.WithAddress(
				tfdiags.Warning,
				"tiers[tier_name=DEVNORTH].colour",
				"Unknown field",
				"The field is not declared.",
			),
			`
Warning: Unknown field

  at tiers[tier_name=DEVNORTH].colour

The field is not declared.
`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var diags tfdiags.Diagnostics
			diags = diags.Append(test.Diag)
			diag := diags[0]
			got := strings.TrimSpace(DiagnosticPlain(diag, 40))
			want := strings.TrimSpace(test.Want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("diff:\n%s", diff)
			}
		})
	}
}

func TestDiagnosticWarningsCompact(t *testing.T) {
	var diags tfdiags.Diagnostics
	diags = diags.Append(tfdiags.SimpleWarning("foo"))
	diags = diags.Append(tfdiags.WithAddress(tfdiags.Warning, "tiers[tier_name=DEVNORTH].colour", "Unknown field", "..."))
	diags = diags.Append(&hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  "Deprecated setting",
		Detail:   "...",
		Subject: &hcl.Range{
			Filename: ".driftconfigrc",
			Start:    hcl.Pos{Line: 2, Column: 1, Byte: 5},
			End:      hcl.Pos{Line: 2, Column: 1, Byte: 5},
		},
	})

	// A zero-value Colorize just passes all the formatting
	// codes back to us, so we can test them literally.
	got := DiagnosticWarningsCompact(diags, &colorstring.Colorize{})
	want := `[bold][yellow]Warnings:[reset]

- foo
- Unknown field
  at tiers[tier_name=DEVNORTH].colour
- Deprecated setting
  on .driftconfigrc line 2
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong result\n%s", diff)
	}
}
