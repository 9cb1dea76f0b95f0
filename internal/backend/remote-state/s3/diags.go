// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package s3

import (
	"strings"

	basediag "github.com/hashicorp/aws-sdk-go-base/v2/diag"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// fromBaseDiags converts the diagnostics produced while resolving the AWS
// configuration. Anything that is not a warning is treated as an error.
func fromBaseDiags(in basediag.Diagnostics) tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics
	for _, d := range in {
		severity := tfdiags.Error
		if d.Severity() == basediag.SeverityWarning {
			severity = tfdiags.Warning
		}
		diags = diags.Append(tfdiags.Sourceless(severity, d.Summary(), d.Detail()))
	}
	return diags
}

func diagnosticString(diag tfdiags.Diagnostic) string {
	desc := diag.Description()
	s := diag.Severity().String() + ": " + desc.Summary
	if desc.Detail != "" {
		s += "\n\n" + desc.Detail
	}
	return s
}

func diagnosticsString(diags tfdiags.Diagnostics) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = diagnosticString(d)
	}
	return strings.Join(parts, ",\n")
}
