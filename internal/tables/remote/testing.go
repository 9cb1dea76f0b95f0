// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package remote

import (
	"bytes"
	"crypto/md5"
	"slices"
	"testing"
)

// TestClient is a generic function to test any client. The client must be
// empty when passed in, and is left empty on success.
func TestClient(t *testing.T, c Client) {
	t.Helper()
	ctx := t.Context()

	payload, err := c.Get(ctx, "items.json")
	if err != nil {
		t.Fatalf("get of missing unit: %s", err)
	}
	if payload != nil {
		t.Fatalf("get of missing unit returned %q", payload.Data)
	}

	units := map[string][]byte{
		"items.json":     []byte(`[{"id": 1}]`),
		"#meta.json":     []byte(`{"checksum": "abc"}`),
		"owners.msgpack": {0x91, 0x80},
	}
	for unit, data := range units {
		if err := c.Put(ctx, unit, data); err != nil {
			t.Fatalf("put %s: %s", unit, err)
		}
	}

	for unit, data := range units {
		p, err := c.Get(ctx, unit)
		if err != nil {
			t.Fatalf("get %s: %s", unit, err)
		}
		if p == nil {
			t.Fatalf("get %s: unit not found after put", unit)
		}
		if !bytes.Equal(p.Data, data) {
			t.Fatalf("get %s: expected %q, got %q", unit, data, p.Data)
		}
		if p.MD5 != nil {
			sum := md5.Sum(data)
			if !bytes.Equal(p.MD5, sum[:]) {
				t.Fatalf("get %s: wrong MD5 %x", unit, p.MD5)
			}
		}
	}

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %s", err)
	}
	slices.Sort(list)
	want := []string{"#meta.json", "items.json", "owners.msgpack"}
	if !slices.Equal(list, want) {
		t.Fatalf("list: expected %q, got %q", want, list)
	}

	replaced := []byte(`[]`)
	if err := c.Put(ctx, "items.json", replaced); err != nil {
		t.Fatalf("put over existing unit: %s", err)
	}
	p, err := c.Get(ctx, "items.json")
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if p == nil || !bytes.Equal(p.Data, replaced) {
		t.Fatalf("put did not replace the unit")
	}

	for unit := range units {
		if err := c.Delete(ctx, unit); err != nil {
			t.Fatalf("delete %s: %s", unit, err)
		}
	}
	if err := c.Delete(ctx, "items.json"); err != nil {
		t.Fatalf("delete of missing unit: %s", err)
	}
	p, err = c.Get(ctx, "items.json")
	if err != nil {
		t.Fatalf("get after delete: %s", err)
	}
	if p != nil {
		t.Fatalf("unit still exists after delete")
	}
	list, err = c.List(ctx)
	if err != nil {
		t.Fatalf("list: %s", err)
	}
	if len(list) != 0 {
		t.Fatalf("units left after delete: %q", list)
	}
}
