// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xlab/treeprint"

	"github.com/driftconfig/driftconfig/internal/command/format"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/tablediff"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// Diff renders the results of the diff command.
type Diff interface {
	Diagnostics(diags tfdiags.Diagnostics)

	// Meta reports a comparison of two metadata records.
	Meta(title string, d tablediff.MetaDiff)

	// Table reports the row level changes of one table.
	Table(def *tables.TableDef, d tablediff.TableDiff)

	// Flush writes anything the view held back. It returns false if the
	// output could not be written.
	Flush() bool
}

// NewDiff returns an initialized Diff implementation for the given ViewType.
func NewDiff(vt ViewType, view *View) Diff {
	switch vt {
	case ViewJSON:
		return &DiffJSON{view: view, out: diffOutput{Tables: map[string]tablediff.TableDiff{}}}
	case ViewHuman:
		return &DiffHuman{view: view}
	default:
		panic(fmt.Sprintf("unknown view type %v", vt))
	}
}

type DiffHuman struct {
	view *View
}

var _ Diff = (*DiffHuman)(nil)

func (v *DiffHuman) Diagnostics(diags tfdiags.Diagnostics) {
	v.view.Diagnostics(diags)
}

func (v *DiffHuman) Meta(title string, d tablediff.MetaDiff) {
	if d.Identical {
		_, _ = v.view.streams.Println(v.view.colorize.Color(fmt.Sprintf("[green]%s is clean.[reset]", title)))
		return
	}

	tree := treeprint.NewWithRoot(v.view.colorize.Color(fmt.Sprintf("[bold][yellow]%s are different:[reset]", title)))
	tree.AddNode(fmt.Sprintf("first checksum:  %s", shortChecksum(d.Checksum.First)))
	tree.AddNode(fmt.Sprintf("second checksum: %s", shortChecksum(d.Checksum.Second)))
	if d.ModifiedDiff != nil {
		tree.AddNode(fmt.Sprintf("time between changes: %s", d.ModifiedDiff.Truncate(time.Second)))
	}
	if d.LineageChanged {
		tree.AddNode(v.view.colorize.Color("[red]lineage differs, the stores were created independently[reset]"))
	}
	addNameBranch(tree, "new tables", d.NewTables)
	addNameBranch(tree, "deleted tables", d.DeletedTables)
	addNameBranch(tree, "modified tables", d.ModifiedTables)
	_, _ = v.view.streams.Print(tree.String())
}

func (v *DiffHuman) Table(def *tables.TableDef, d tablediff.TableDiff) {
	_, _ = v.view.streams.Println("")
	if d.Empty() {
		_, _ = v.view.streams.Println(fmt.Sprintf("Table %s has no row changes.", def.Name))
		return
	}

	tree := treeprint.NewWithRoot(v.view.colorize.Color(fmt.Sprintf("[bold]Table %s[reset] (first=local, second=origin)", def.Name)))
	for _, row := range d.Added {
		tree.AddNode(v.view.colorize.Color(fmt.Sprintf("[green]+[reset] %s %s", rowLabel(def, row), compactJSON(row))))
	}
	for _, row := range d.Removed {
		tree.AddNode(v.view.colorize.Color(fmt.Sprintf("[red]-[reset] %s %s", rowLabel(def, row), compactJSON(row))))
	}
	for _, mod := range d.Modified {
		branch := tree.AddBranch(v.view.colorize.Color(fmt.Sprintf("[yellow]~[reset] %s", keyLabel(mod.Key.String()))))
		for _, field := range mod.ChangedFields {
			before, hadBefore := mod.Before[field]
			after, hasAfter := mod.After[field]
			switch {
			case !hadBefore:
				branch.AddNode(fmt.Sprintf("%s: (unset) -> %s", field, compactJSON(after)))
			case !hasAfter:
				branch.AddNode(fmt.Sprintf("%s: %s -> (unset)", field, compactJSON(before)))
			default:
				branch.AddNode(fmt.Sprintf("%s: %s -> %s", field, compactJSON(before), compactJSON(after)))
			}
		}
	}
	_, _ = v.view.streams.Print(tree.String())
}

func (v *DiffHuman) Flush() bool {
	return true
}

// DiffJSON collects every comparison and writes them as a single JSON
// document on Flush.
type DiffJSON struct {
	view *View
	out  diffOutput
}

var _ Diff = (*DiffJSON)(nil)

type diffOutput struct {
	Comparisons []metaComparison               `json:"comparisons"`
	Tables      map[string]tablediff.TableDiff `json:"tables"`
}

type metaComparison struct {
	Title string             `json:"title"`
	Diff  tablediff.MetaDiff `json:"diff"`
}

func (v *DiffJSON) Diagnostics(diags tfdiags.Diagnostics) {
	v.view.Diagnostics(diags)
}

func (v *DiffJSON) Meta(title string, d tablediff.MetaDiff) {
	v.out.Comparisons = append(v.out.Comparisons, metaComparison{Title: title, Diff: d})
}

func (v *DiffJSON) Table(def *tables.TableDef, d tablediff.TableDiff) {
	v.out.Tables[def.Name] = d
}

func (v *DiffJSON) Flush() bool {
	raw, err := json.MarshalIndent(v.out, "", "  ")
	if err != nil {
		_, _ = v.view.streams.Eprintln(fmt.Sprintf("\nError marshalling JSON: %s", err))
		return false
	}
	_, _ = v.view.streams.Println(string(raw))
	return true
}

func addNameBranch(tree treeprint.Tree, label string, names []string) {
	if len(names) == 0 {
		return
	}
	branch := tree.AddBranch(label)
	for _, name := range names {
		branch.AddNode(name)
	}
}

func shortChecksum(checksum string) string {
	if checksum == "" {
		return "(none)"
	}
	if len(checksum) > 7 {
		return checksum[:7]
	}
	return checksum
}

func rowLabel(def *tables.TableDef, row tables.Row) string {
	key, err := def.KeyOf(row)
	if err != nil {
		return "(no key)"
	}
	return keyLabel(key.String())
}

func keyLabel(key string) string {
	if key == "" {
		// Single-row tables have an empty key.
		return "(row)"
	}
	return format.ReplaceControlChars(key)
}

func compactJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return format.ReplaceControlChars(strings.TrimSpace(string(raw)))
}
