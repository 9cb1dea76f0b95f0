// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"github.com/mitchellh/colorstring"

	"github.com/driftconfig/driftconfig/internal/command/format"
	"github.com/driftconfig/driftconfig/internal/terminal"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// ViewType selects between the human-readable and the machine-readable
// rendering of a command's results.
type ViewType rune

const (
	ViewNone  ViewType = 0
	ViewHuman ViewType = 'H'
	ViewJSON  ViewType = 'J'
)

func (vt ViewType) String() string {
	switch vt {
	case ViewNone:
		return "none"
	case ViewHuman:
		return "human"
	case ViewJSON:
		return "json"
	default:
		return "unknown"
	}
}

// View is the base layer for command views, encapsulating a set of I/O
// streams, a colorize implementation, and implementing a human friendly view
// for diagnostics.
type View struct {
	streams  *terminal.Streams
	colorize *colorstring.Colorize

	compactWarnings bool
}

// Initialize a View with the given streams and a disabled colorize object.
func NewView(streams *terminal.Streams) *View {
	return &View{
		streams: streams,
		colorize: &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: true,
			Reset:   true,
		},
	}
}

// Configure applies the global view configuration flags.
func (v *View) Configure(noColor, compactWarnings bool) {
	v.colorize.Disable = noColor
	v.compactWarnings = compactWarnings
}

// Colorize returns the colorize implementation the view renders with.
func (v *View) Colorize() *colorstring.Colorize {
	return v.colorize
}

// Streams returns the streams the view writes to.
func (v *View) Streams() *terminal.Streams {
	return v.streams
}

// Diagnostics renders a set of warnings and errors in human-readable form.
// Warnings are printed to stdout, and errors to stderr.
func (v *View) Diagnostics(diags tfdiags.Diagnostics) {
	diags.Sort()

	if len(diags) == 0 {
		return
	}

	// Integrity checks tend to repeat the same warning for many rows.
	diags = diags.Consolidate(3, tfdiags.Warning)

	if v.compactWarnings && !diags.HasErrors() {
		msg := format.DiagnosticWarningsCompact(diags, v.colorize)
		msg = "\n" + msg + "\nTo see the full warning notes, run driftconfig with -verbose.\n"
		_, _ = v.streams.Print(msg)
		return
	}

	for _, diag := range diags {
		var msg string
		if v.colorize.Disable {
			msg = format.DiagnosticPlain(diag, v.streams.Stderr.Columns())
		} else {
			msg = format.Diagnostic(diag, v.colorize, v.streams.Stderr.Columns())
		}

		if diag.Severity() == tfdiags.Error {
			_, _ = v.streams.Eprint(msg)
		} else {
			_, _ = v.streams.Print(msg)
		}
	}
}

// HelpPrompt is intended to be called from commands which fail to parse all
// of their CLI arguments successfully. It refers users to the full help output
// rather than rendering it directly, which can be overwhelming and confusing.
func (v *View) HelpPrompt(command string) {
	_, _ = v.streams.Eprintf(helpPrompt, command)
}

const helpPrompt = `
For more help on using this command, run:
  driftconfig %s --help
`

// outputColumns returns the number of text character cells any non-error
// output should be wrapped to.
func (v *View) outputColumns() int {
	return v.streams.Stdout.Columns()
}
