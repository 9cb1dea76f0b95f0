// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package version

import (
	"runtime/debug"
	"slices"
)

// backendDependencies are the client libraries the origin backends are
// built on. Their versions are logged at startup.
var backendDependencies = []string{
	"github.com/aws/aws-sdk-go-v2/service/s3",
	"github.com/hashicorp/consul/api",
	"github.com/redis/go-redis/v9",
	"github.com/vmihailenco/msgpack/v5",
}

// InterestingDependencies returns the compiled-in module versions of the
// libraries driftconfig reaches its origins through, so that debug logs
// attached to bug reports can be matched against their changelogs.
// A replaced module is reported as its replacement.
func InterestingDependencies() []*debug.Module {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	var ret []*debug.Module
	for _, mod := range info.Deps {
		if !slices.Contains(backendDependencies, mod.Path) {
			continue
		}
		if mod.Replace != nil {
			mod = mod.Replace
		}
		ret = append(ret, mod)
	}
	return ret
}
