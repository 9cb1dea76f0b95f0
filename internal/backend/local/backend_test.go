// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package local

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

func TestLocal_impl(t *testing.T) {
	var _ remote.Client = new(RemoteClient)
}

func TestRemoteClient(t *testing.T) {
	c, _ := TestClient(t)
	remote.TestClient(t, c)
}

func TestRemoteClient_osFs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	u := &url.URL{Scheme: "file", Path: dir}
	c, err := New(t.Context(), u)
	if err != nil {
		t.Fatal(err)
	}
	remote.TestClient(t, c)

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory was not created: %s", err)
	}
}

func TestRemoteClient_invalidUnit(t *testing.T) {
	c, _ := TestClient(t)
	for _, unit := range []string{"", "..", "../escape.json", "a/b.json"} {
		if err := c.Put(t.Context(), unit, []byte("x")); err == nil {
			t.Errorf("%q: expected an error", unit)
		}
	}
}

func TestRemoteClient_ignoresOtherFiles(t *testing.T) {
	c, fs := TestClient(t)
	if err := fs.MkdirAll(filepath.Join(c.Dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, filepath.Join(c.Dir, ".tmp-items.json-123"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(t.Context(), "items.json", []byte("[]")); err != nil {
		t.Fatal(err)
	}

	units, err := c.List(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 1 || units[0] != "items.json" {
		t.Fatalf("wrong units %q", units)
	}
}

func TestStore(t *testing.T) {
	c, fs := TestClient(t)
	s := remote.NewStore(c, tablefile.JSON)
	src := tables.TestTableStore(t)

	if err := s.SaveTableStore(t.Context(), src); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fs, filepath.Join(c.Dir, "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n    {\n        \"title\": \"test\"\n    }\n]\n"
	if string(data) != want {
		t.Fatalf("wrong file content\n%s", data)
	}

	got, err := s.LoadTableStore(t.Context(), src.Definition(), remote.LoadOptions{Options: tables.DefaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	if got.Checksum() != src.Checksum() {
		t.Fatalf("wrong checksum %s", got.Checksum())
	}
}
