// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package tablefile implements the serialization of a table store into
// storage units: one unit per table holding its rows, plus a meta unit
// holding the store's metadata.
//
// Two formats are supported. JSON is indented with sorted object keys so that
// units can be read, edited and diffed by humans. Msgpack is a compact
// binary encoding of the same values.
package tablefile

import (
	"fmt"
	"strings"
)

// Format is a serialization format for storage units.
type Format string

const (
	JSON    Format = "json"
	Msgpack Format = "msgpack"
)

// Formats lists every supported format in the order readers probe for them.
var Formats = []Format{JSON, Msgpack}

// MetaUnitName is the unit name, without extension, of the unit holding a
// store's metadata. Table names cannot start with '#', so it never collides
// with a table unit.
const MetaUnitName = "#meta"

// ParseFormat returns the format with the given name. The empty string
// selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "json":
		return JSON, nil
	case "msgpack", "mp", "binary":
		return Msgpack, nil
	default:
		return "", fmt.Errorf("unsupported format %q; must be %q or %q", s, JSON, Msgpack)
	}
}

// Ext returns the file extension of units in this format, including the
// leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Binary returns true for formats that are not meant to be read by humans.
func (f Format) Binary() bool {
	return f == Msgpack
}

// TableUnit returns the unit name of the named table.
func (f Format) TableUnit(table string) string {
	return table + f.Ext()
}

// MetaUnit returns the unit name of the meta unit.
func (f Format) MetaUnit() string {
	return MetaUnitName + f.Ext()
}

// ParseUnit splits a unit name into its base name and format. The base name
// of the meta unit is MetaUnitName. ok is false for names that do not end in
// the extension of a supported format.
func ParseUnit(unit string) (name string, format Format, ok bool) {
	for _, f := range Formats {
		if base, found := strings.CutSuffix(unit, f.Ext()); found && base != "" {
			return base, f, true
		}
	}
	return "", "", false
}

// Detect guesses the format of an encoded unit from its first significant
// byte. JSON units are always an array or an object, while the leading byte
// of a msgpack array or map is never printable ASCII.
func Detect(data []byte) (Format, bool) {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[', '{':
			return JSON, true
		}
		switch {
		case b >= 0x80 && b <= 0x9f, b == 0xc0, b == 0xdc, b == 0xdd, b == 0xde, b == 0xdf:
			return Msgpack, true
		}
		return "", false
	}
	return "", false
}
