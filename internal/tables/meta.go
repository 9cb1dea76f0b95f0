// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"maps"
	"time"
)

// Meta summarizes the content of a TableStore so that two copies of a store
// can be compared without reading their rows.
//
// Checksum, TableChecksums and the timestamps are recomputed from table
// content by TableStore.RefreshMetadata. BaseChecksum is the checksum of the
// origin store as last observed by a local working copy, and is only ever
// set by the sync protocol. It does not take part in any checksum.
type Meta struct {
	Checksum          string               `json:"checksum" msgpack:"checksum"`
	LastModified      time.Time            `json:"last_modified" msgpack:"last_modified"`
	TableChecksums    map[string]string    `json:"table_checksums" msgpack:"table_checksums"`
	TableTimestamps   map[string]time.Time `json:"table_timestamps" msgpack:"table_timestamps"`
	BaseChecksum      string               `json:"base_checksum,omitempty" msgpack:"base_checksum,omitempty"`
	Lineage           string               `json:"lineage,omitempty" msgpack:"lineage,omitempty"`
	DefinitionVersion int                  `json:"definition_version" msgpack:"definition_version"`
}

// Copy returns a copy of the meta record that shares no maps with it.
func (m Meta) Copy() Meta {
	m.TableChecksums = maps.Clone(m.TableChecksums)
	m.TableTimestamps = maps.Clone(m.TableTimestamps)
	return m
}

// IsZero returns true for a meta record that was never computed.
func (m Meta) IsZero() bool {
	return m.Checksum == "" && len(m.TableChecksums) == 0
}
