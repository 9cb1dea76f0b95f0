// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package tables contains the in-memory model of a driftconfig table store:
// a set of named tables of rows, each table declaring a schema and a primary
// key, plus the metadata record (checksums and timestamps) that lets two
// copies of a store be compared without inspecting their rows.
//
// Rows are loosely-typed maps, but every value that enters a Table is first
// normalized into the JSON value space (string, float64, bool, nil, []any and
// map[string]any). This makes checksums and diffs independent of the
// serialization format a row was read from.
//
// Serialization of a TableStore is the concern of package tablefile, and
// moving one between storage locations is the concern of package remote.
package tables
