// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package format

import (
	"strings"
)

// unicodeControlPicturesStart is the codepoint of the first character in the
// Unicode "Control Pictures" block. Adding it to a C0 control character
// gives the picture of that character.
const unicodeControlPicturesStart = rune(0x2400)

const del = rune(0x7f)
const delPicture = rune(0x2421)

// ReplaceControlChars translates 7-bit C0 control characters in the given
// string into their corresponding symbols from the Unicode "Control Pictures"
// block, so that the result can be printed to a terminal without affecting
// its state. Newline, carriage return and horizontal tab are left alone.
//
// Row values come from whatever wrote the configuration database, so this is
// applied to every value rendered in human-oriented output. JSON output
// escapes control characters already and needs no filtering.
func ReplaceControlChars(input string) string {
	if !strings.ContainsFunc(input, isFilteredControlChar) {
		return input
	}

	var buf strings.Builder
	for _, r := range input {
		if !isFilteredControlChar(r) {
			_, _ = buf.WriteRune(r)
			continue
		}
		_, _ = buf.WriteRune(controlPicture(r))
	}
	return buf.String()
}

func isFilteredControlChar(r rune) bool {
	// Space (0x20) is the first non-control character
	return (r < ' ' && r != '\r' && r != '\n' && r != '\t') || r == del
}

// controlPicture returns the control picture equivalent of the given C0
// control character, or the character itself if it is not one.
func controlPicture(ctrl rune) rune {
	if ctrl < ' ' {
		return ctrl + unicodeControlPicturesStart
	}
	if ctrl == del {
		return delPicture
	}
	return ctrl
}
