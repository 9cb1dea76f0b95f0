// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"fmt"

	"github.com/hashicorp/go-uuid"
)

// NewLineage generates a new lineage identifier string. A lineage identifier
// is an opaque string that is intended to be unique in space and time, chosen
// when a table store is created at its origin and then preserved afterwards
// so that two copies of a domain's configuration can be recognized as
// descending from the same creation.
func NewLineage() string {
	lineage, err := uuid.GenerateUUID()
	if err != nil {
		panic(fmt.Errorf("Failed to generate lineage: %w", err))
	}
	return lineage
}
