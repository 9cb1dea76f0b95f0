// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package tfdiags is a utility package for representing errors and
// warnings in a manner that allows us to produce good messages for the
// user: integrity violations found in a table store, problems in the
// CLI configuration file, and backend configuration problems.
package tfdiags

type Diagnostic interface {
	Severity() Severity
	Description() Description
	Source() Source
}

type Description struct {
	// Address is an optional location within the table store the diagnostic
	// refers to, such as "tiers[tier_name=LIVENORTH].organization_name".
	Address string
	Summary string
	Detail  string
}

type Source struct {
	Subject *SourceRange
	Context *SourceRange
}
