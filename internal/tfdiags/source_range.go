// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package tfdiags

import "fmt"

// SourceRange is a span of a configuration file, such as the CLI
// configuration, that a diagnostic refers to.
type SourceRange struct {
	Filename   string
	Start, End SourcePos
}

type SourcePos struct {
	Line, Column, Byte int
}

// Location describes where the range starts, in the form shown to users.
func (r SourceRange) Location() string {
	return fmt.Sprintf("%s line %d", r.Filename, r.Start.Line)
}
