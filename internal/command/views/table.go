// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/driftconfig/driftconfig/internal/command/format"
	"github.com/driftconfig/driftconfig/internal/tables"
)

// columnPadding is the number of spaces between two table columns.
const columnPadding = 3

// Table prints rows as a table with one column per header. Rows are sorted
// by their rendered column values, and rows with a false "is_active" field
// are dimmed.
func (v *View) Table(headers []string, rows []tables.Row, indent string) {
	cells := make([][]string, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(columnTitle(h))
	}
	for r, row := range rows {
		cells[r] = make([]string, len(headers))
		for i, h := range headers {
			cells[r][i] = cellValue(row[h])
			widths[i] = max(widths[i], utf8.RuneCountInString(cells[r][i]))
		}
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return strings.Join(cells[order[a]], ":") < strings.Join(cells[order[b]], ":")
	})

	var b strings.Builder
	b.WriteString(indent)
	for i, h := range headers {
		b.WriteString(v.colorize.Color("[bold]" + pad(columnTitle(h), widths[i]+columnPadding) + "[reset]"))
	}
	_, _ = v.streams.Println(strings.TrimRight(b.String(), " "))

	for _, r := range order {
		b.Reset()
		b.WriteString(indent)
		for i := range headers {
			b.WriteString(pad(cells[r][i], widths[i]+columnPadding))
		}
		line := strings.TrimRight(b.String(), " ")
		if active, ok := rows[r]["is_active"].(bool); ok && !active {
			line = v.colorize.Color("[dark_gray]" + line + "[reset]")
		}
		_, _ = v.streams.Println(line)
	}
}

// Row prints a single row as indented JSON under a title.
func (v *View) Row(title string, row tables.Row) {
	_, _ = v.streams.Println(v.colorize.Color(fmt.Sprintf("[bold]%s[reset]:", format.ReplaceControlChars(title))))
	_, _ = v.streams.Println(prettyJSON(row))
}

// Rows prints several rows as an indented JSON list under a title.
func (v *View) Rows(title string, rows []tables.Row) {
	_, _ = v.streams.Println(v.colorize.Color(fmt.Sprintf("[bold]%s[reset]:", format.ReplaceControlChars(title))))
	_, _ = v.streams.Println(prettyJSON(rows))
}

// columnTitle turns a field name such as "tier_name" into "Tier Name".
func columnTitle(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func cellValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return format.ReplaceControlChars(v)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = cellValue(e)
		}
		return strings.Join(parts, ", ")
	default:
		return format.ReplaceControlChars(fmt.Sprint(v))
	}
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func prettyJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		// Rows are normalized to JSON values when they are added.
		return fmt.Sprintf("%#v", v)
	}
	return string(raw)
}
