// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/driftconfig/driftconfig/version"
)

var Version = version.Version

var VersionPrerelease = version.Prerelease
