// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// Version represents the command-line arguments for the version command.
type Version struct {
	JSON bool
}

// ParseVersion processes CLI arguments, returning a Version value and errors.
// If errors are encountered, a Version value is still returned representing
// the best effort interpretation of the arguments.
func ParseVersion(args []string) (*Version, tfdiags.Diagnostics) {
	ret := &Version{}

	cmdFlags := defaultFlagSet("version")
	// Enable but ignore the global version flags. The version command is
	// also run when any of the arguments are -v, -version, or --version,
	// with the rest of the arguments, so we need to be able to cope with
	// those.
	cmdFlags.BoolP("version", "v", true, "version")
	cmdFlags.BoolVar(&ret.JSON, "json", false, "json")

	diags := parseFlags(cmdFlags, args)
	return ret, diags
}
