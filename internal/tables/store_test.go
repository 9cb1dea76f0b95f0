// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGetTable_unknown(t *testing.T) {
	ts := NewTableStore(TestDefinition(), DefaultOptions())
	_, err := ts.GetTable("nope")
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("wrong error %v; want ErrUnknownTable", err)
	}
	var unknown *UnknownTableError
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Fatalf("wrong error %#v", err)
	}
}

func TestRefreshMetadata(t *testing.T) {
	ts := TestTableStore(t)
	first := ts.Meta()

	if first.Checksum != ts.Checksum() {
		t.Fatalf("installed checksum does not match content")
	}
	if first.DefinitionVersion != 1 {
		t.Errorf("wrong definition version %d", first.DefinitionVersion)
	}
	if diff := cmp.Diff(ts.TableNames(), sortedKeys(first.TableChecksums)); diff != "" {
		t.Errorf("wrong table checksums\n%s", diff)
	}

	later := testNow.Add(time.Hour)
	prev, next := ts.RefreshMetadata(later)
	if diff := cmp.Diff(first, prev); diff != "" {
		t.Errorf("wrong previous meta\n%s", diff)
	}
	if diff := cmp.Diff(first, next); diff != "" {
		t.Errorf("refreshing an unchanged store changed its meta\n%s", diff)
	}

	if _, err := ts.MustTable("items").Update(Row{"id": 1, "name": "changed", "owner": "alice"}); err != nil {
		t.Fatal(err)
	}
	_, next = ts.RefreshMetadata(later)
	if next.Checksum == first.Checksum {
		t.Fatalf("checksum did not change")
	}
	if !next.LastModified.Equal(later) {
		t.Errorf("wrong last modified %s; want %s", next.LastModified, later)
	}
	if !next.TableTimestamps["items"].Equal(later) {
		t.Errorf("items timestamp did not advance")
	}
	if !next.TableTimestamps["owners"].Equal(testNow) {
		t.Errorf("owners timestamp advanced without a change")
	}
}

func TestRefreshMetadata_keepsBaseAndLineage(t *testing.T) {
	ts := TestTableStore(t)
	ts.SetBaseChecksum("base")
	ts.SetLineage("lineage")
	_, next := ts.RefreshMetadata(testNow)
	if next.BaseChecksum != "base" || next.Lineage != "lineage" {
		t.Errorf("wrong meta %#v", next)
	}
}

func TestIsModified(t *testing.T) {
	ts := TestTableStore(t)
	if ts.IsModified() {
		t.Fatalf("fresh store reports modification")
	}

	ts.SetBaseChecksum(ts.Checksum())
	if _, err := ts.MustTable("owners").Add(Row{"name": "carol"}); err != nil {
		t.Fatal(err)
	}
	if !ts.IsModified() {
		t.Fatalf("changed store does not report modification")
	}

	// Saving refreshes the meta but leaves the base alone, so the store
	// still differs from what was last seen at origin.
	ts.RefreshMetadata(testNow)
	if !ts.IsModified() {
		t.Fatalf("saved store no longer reports modification")
	}
}

func TestClone(t *testing.T) {
	ts := TestTableStore(t)
	clone := ts.Clone()
	if clone.Checksum() != ts.Checksum() {
		t.Fatalf("clone has different content")
	}
	if _, err := clone.MustTable("owners").Add(Row{"name": "carol"}); err != nil {
		t.Fatal(err)
	}
	if clone.Checksum() == ts.Checksum() {
		t.Fatalf("clone shares tables with the original")
	}
}

func sortedKeys(m map[string]string) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
