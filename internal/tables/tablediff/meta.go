// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package tablediff compares table stores: cheaply by their metadata, and
// row by row for individual tables.
package tablediff

import (
	"sort"
	"time"

	"github.com/driftconfig/driftconfig/internal/tables"
)

// ChecksumPair holds the store checksums of the two sides of a comparison.
type ChecksumPair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// MetaDiff is the result of comparing two metadata records.
type MetaDiff struct {
	Identical bool         `json:"identical"`
	Checksum  ChecksumPair `json:"checksum"`

	// ModifiedDiff is the absolute time between the LastModified stamps of
	// the two records, or nil when either of them was never modified.
	ModifiedDiff *time.Duration `json:"modified_diff,omitempty"`

	NewTables      []string `json:"new_tables"`
	DeletedTables  []string `json:"deleted_tables"`
	ModifiedTables []string `json:"modified_tables"`

	// LineageChanged is set when both records carry a lineage and the two
	// differ, meaning the stores were created independently.
	LineageChanged bool `json:"lineage_changed,omitempty"`
}

// DiffMeta compares two metadata records. The stores are identical exactly
// when their checksums are equal. Table level changes come from the table
// checksums alone: tables only in m2 are new, tables only in m1 are
// deleted, and tables in both with differing checksums are modified. All
// table name lists are sorted.
func DiffMeta(m1, m2 tables.Meta) MetaDiff {
	ret := MetaDiff{
		Identical: m1.Checksum == m2.Checksum,
		Checksum: ChecksumPair{
			First:  m1.Checksum,
			Second: m2.Checksum,
		},
		NewTables:      []string{},
		DeletedTables:  []string{},
		ModifiedTables: []string{},
		LineageChanged: m1.Lineage != "" && m2.Lineage != "" && m1.Lineage != m2.Lineage,
	}

	if !m1.LastModified.IsZero() && !m2.LastModified.IsZero() {
		d := m2.LastModified.Sub(m1.LastModified)
		if d < 0 {
			d = -d
		}
		ret.ModifiedDiff = &d
	}

	for name, checksum := range m2.TableChecksums {
		other, ok := m1.TableChecksums[name]
		switch {
		case !ok:
			ret.NewTables = append(ret.NewTables, name)
		case other != checksum:
			ret.ModifiedTables = append(ret.ModifiedTables, name)
		}
	}
	for name := range m1.TableChecksums {
		if _, ok := m2.TableChecksums[name]; !ok {
			ret.DeletedTables = append(ret.DeletedTables, name)
		}
	}
	sort.Strings(ret.NewTables)
	sort.Strings(ret.DeletedTables)
	sort.Strings(ret.ModifiedTables)

	return ret
}

// ChangedTables returns every table named in the diff, new, deleted or
// modified, in lexical order.
func (d MetaDiff) ChangedTables() []string {
	ret := make([]string, 0, len(d.NewTables)+len(d.DeletedTables)+len(d.ModifiedTables))
	ret = append(ret, d.NewTables...)
	ret = append(ret, d.DeletedTables...)
	ret = append(ret, d.ModifiedTables...)
	sort.Strings(ret)
	return ret
}
