// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package tfdiags

type simpleDiagnostic struct {
	severity Severity
	address  string
	summary  string
	detail   string
}

var _ Diagnostic = (*simpleDiagnostic)(nil)

// Sourceless creates and returns a diagnostic with no source location
// information. This is generally used for operational-type errors that are
// caused by or relate to the environment where driftconfig is running rather
// than to the contents of a configuration file.
func Sourceless(severity Severity, summary, detail string) Diagnostic {
	return &simpleDiagnostic{
		severity: severity,
		summary:  summary,
		detail:   detail,
	}
}

// WithAddress is like Sourceless but also records the location within a
// table store that the diagnostic concerns.
func WithAddress(severity Severity, address, summary, detail string) Diagnostic {
	return &simpleDiagnostic{
		severity: severity,
		address:  address,
		summary:  summary,
		detail:   detail,
	}
}

// SimpleWarning constructs a warning diagnostic with only a summary.
func SimpleWarning(msg string) Diagnostic {
	return Sourceless(Warning, msg, "")
}

func (d *simpleDiagnostic) Severity() Severity {
	return d.severity
}

func (d *simpleDiagnostic) Description() Description {
	return Description{
		Address: d.address,
		Summary: d.summary,
		Detail:  d.detail,
	}
}

func (d *simpleDiagnostic) Source() Source {
	// No source information available for a sourceless diagnostic
	return Source{}
}
