// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Checksum returns the canonical checksum of the table's content: a SHA-256
// digest over the rows in primary key order, each row encoded as JSON with
// its fields in lexical order. The order rows were inserted in, and the
// format they were read from, do not affect it.
func (t *Table) Checksum() string {
	h := sha256.New()
	rows, _ := t.sorted()
	for _, row := range rows {
		// encoding/json writes map keys in sorted order, which is what makes
		// this encoding canonical.
		raw, err := json.Marshal(map[string]any(row))
		if err != nil {
			// Stored rows are normalized, so this cannot happen.
			panic(err)
		}
		h.Write(raw)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// StoreChecksum combines per-table checksums into the checksum of a whole
// store. Table names are hashed in lexical order along with their checksum.
func StoreChecksum(tableChecksums map[string]string) string {
	names := make([]string, 0, len(tableChecksums))
	for name := range tableChecksums {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(tableChecksums[name]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
