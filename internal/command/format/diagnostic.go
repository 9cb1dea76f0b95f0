// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package format

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/mitchellh/colorstring"
	wordwrap "github.com/mitchellh/go-wordwrap"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

var disabledColorize = &colorstring.Colorize{
	Colors:  colorstring.DefaultColors,
	Disable: true,
}

// Diagnostic formats a single diagnostic message.
//
// The width argument specifies at what column the diagnostic messages will
// be wrapped. If set to zero, messages will not be wrapped by this function
// at all.
func Diagnostic(diag tfdiags.Diagnostic, color *colorstring.Colorize, width int) string {
	if diag == nil {
		return ""
	}

	var buf bytes.Buffer

	// The left rule marks which lines belong to the diagnostic when it is
	// printed alongside other output.
	var leftRuleLine, leftRuleStart, leftRuleEnd string
	var leftRuleWidth int // in visual character cells

	switch diag.Severity() {
	case tfdiags.Error:
		buf.WriteString(color.Color("[bold][red]Error: [reset]"))
		leftRuleLine = color.Color("[red]│[reset] ")
		leftRuleStart = color.Color("[red]╷[reset]")
		leftRuleEnd = color.Color("[red]╵[reset]")
		leftRuleWidth = 2
	case tfdiags.Warning:
		buf.WriteString(color.Color("[bold][yellow]Warning: [reset]"))
		leftRuleLine = color.Color("[yellow]│[reset] ")
		leftRuleStart = color.Color("[yellow]╷[reset]")
		leftRuleEnd = color.Color("[yellow]╵[reset]")
		leftRuleWidth = 2
	default:
		buf.WriteString(color.Color("\n[reset]"))
	}

	desc := diag.Description()

	// The summary is not wrapped. It is where the text of a native Go error
	// ends up and that rarely wraps well.
	fmt.Fprintf(&buf, color.Color("[bold]%s[reset]\n\n"), ReplaceControlChars(desc.Summary))

	appendLocation(&buf, diag, color)
	appendDetail(&buf, desc.Detail, width-leftRuleWidth-1)

	var ruleBuf strings.Builder
	sc := bufio.NewScanner(&buf)
	ruleBuf.WriteString(leftRuleStart)
	ruleBuf.WriteByte('\n')
	for sc.Scan() {
		line := sc.Text()
		prefix := leftRuleLine
		if line == "" {
			prefix = strings.TrimSpace(prefix)
		}
		ruleBuf.WriteString(prefix)
		ruleBuf.WriteString(line)
		ruleBuf.WriteByte('\n')
	}
	ruleBuf.WriteString(leftRuleEnd)
	ruleBuf.WriteByte('\n')

	return ruleBuf.String()
}

// DiagnosticPlain is an alternative to Diagnostic which minimises the use of
// virtual terminal formatting sequences.
//
// It is intended for use in automation and other contexts in which
// diagnostic messages are parsed from the output.
func DiagnosticPlain(diag tfdiags.Diagnostic, width int) string {
	if diag == nil {
		return ""
	}

	var buf bytes.Buffer

	switch diag.Severity() {
	case tfdiags.Error:
		buf.WriteString("\nError: ")
	case tfdiags.Warning:
		buf.WriteString("\nWarning: ")
	default:
		buf.WriteString("\n")
	}

	desc := diag.Description()
	fmt.Fprintf(&buf, "%s\n\n", desc.Summary)

	appendLocation(&buf, diag, disabledColorize)
	appendDetail(&buf, desc.Detail, width-1)

	return buf.String()
}

// DiagnosticWarningsCompact is an alternative to Diagnostic for when all of
// the given diagnostics are warnings and we want to show them compactly,
// with only two lines per warning and excluding all of the detail information.
//
// Do not pass non-warning diagnostics to this function, or the result will
// be nonsense.
func DiagnosticWarningsCompact(diags tfdiags.Diagnostics, color *colorstring.Colorize) string {
	var b strings.Builder
	b.WriteString(color.Color("[bold][yellow]Warnings:[reset]\n\n"))
	for _, diag := range diags {
		desc := diag.Description()
		fmt.Fprintf(&b, "- %s\n", ReplaceControlChars(desc.Summary))
		if desc.Address != "" {
			fmt.Fprintf(&b, "  at %s\n", desc.Address)
		} else if subject := diag.Source().Subject; subject != nil {
			fmt.Fprintf(&b, "  on %s\n", subject.Location())
		}
	}
	return b.String()
}

// appendLocation writes where the diagnostic applies: a row or field of a
// table store, or a position in a configuration file.
func appendLocation(buf *bytes.Buffer, diag tfdiags.Diagnostic, color *colorstring.Colorize) {
	desc := diag.Description()
	if desc.Address != "" {
		fmt.Fprintf(buf, color.Color("  at [bold]%s[reset]\n\n"), ReplaceControlChars(desc.Address))
	}
	if subject := diag.Source().Subject; subject != nil {
		fmt.Fprintf(buf, color.Color("  on %s\n\n"), ReplaceControlChars(subject.Location()))
	}
}

func appendDetail(buf *bytes.Buffer, detail string, paraWidth int) {
	if detail == "" {
		return
	}
	detail = ReplaceControlChars(detail)
	if paraWidth <= 0 {
		fmt.Fprintf(buf, "%s\n", detail)
		return
	}
	for line := range strings.SplitSeq(detail, "\n") {
		// Indented lines are preformatted.
		if !strings.HasPrefix(line, " ") {
			line = wordwrap.WrapString(line, uint(paraWidth))
		}
		fmt.Fprintf(buf, "%s\n", line)
	}
}
