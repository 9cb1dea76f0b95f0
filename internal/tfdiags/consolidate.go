// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package tfdiags

import "fmt"

// Consolidate folds diagnostics of the given severity that share a summary
// once threshold of them have been seen. An integrity check of a large table
// would otherwise report one identical problem per row.
//
// The first threshold-1 diagnostics of a summary pass through unchanged and
// the rest are collapsed into a single entry whose detail counts the extra
// ones. The result never shares a backing array with the receiver.
func (diags Diagnostics) Consolidate(threshold int, level Severity) Diagnostics {
	if len(diags) == 0 {
		return nil
	}

	ret := make(Diagnostics, 0, len(diags))
	seen := make(map[string]int)
	groups := make(map[string]*diagGroup)
	for _, diag := range diags {
		if diag.Severity() != level {
			ret = append(ret, diag)
			continue
		}
		summary := diag.Description().Summary
		if g, ok := groups[summary]; ok {
			g.add(diag)
			continue
		}
		seen[summary]++
		if seen[summary] == threshold {
			g := &diagGroup{}
			g.add(diag)
			groups[summary] = g
			ret = append(ret, g)
			continue
		}
		ret = append(ret, diag)
	}
	return ret
}

// diagGroup stands in for one or more diagnostics of the same severity
// and summary. It reports as its first member.
type diagGroup struct {
	members Diagnostics
}

var _ Diagnostic = (*diagGroup)(nil)

func (g *diagGroup) Severity() Severity {
	return g.members[0].Severity()
}

func (g *diagGroup) Description() Description {
	desc := g.members[0].Description()
	extra := len(g.members) - 1
	if extra == 0 {
		return desc
	}

	kind := "warning"
	if g.Severity() == Error {
		kind = "error"
	}
	msg := fmt.Sprintf("(and %d more similar %ss elsewhere)", extra, kind)
	if extra == 1 {
		msg = fmt.Sprintf("(and one more similar %s elsewhere)", kind)
	}
	if desc.Detail == "" {
		desc.Detail = msg
	} else {
		desc.Detail += "\n\n" + msg
	}
	return desc
}

func (g *diagGroup) Source() Source {
	return g.members[0].Source()
}

func (g *diagGroup) add(diag Diagnostic) {
	if len(g.members) != 0 && diag.Severity() != g.Severity() {
		panic("can't group diagnostics of different severities")
	}
	g.members = append(g.members, diag)
}
