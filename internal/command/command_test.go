// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"testing"
	"time"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	backendInit "github.com/driftconfig/driftconfig/internal/backend/init"
	"github.com/driftconfig/driftconfig/internal/backend/remote-state/inmem"
	"github.com/driftconfig/driftconfig/internal/command/cliconfig"
	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/configdb"
	_ "github.com/driftconfig/driftconfig/internal/logging"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/origin"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/terminal"
)

const (
	testConfigDir = "/home/tester/.drift/config"
	testOriginURL = "inmem://dgnorth"
)

// testMeta returns a Meta writing to a mock UI and to test streams, with
// the local copies kept in memory. The clock advances a second on every
// reading.
func testMeta(t *testing.T) (Meta, *cli.MockUi, func(*testing.T) *terminal.TestOutput) {
	t.Helper()
	backendInit.Init()
	t.Cleanup(inmem.Reset)

	streams, done := terminal.StreamsForTesting(t)
	view := views.NewView(streams)
	view.Configure(true, false)
	ui := cli.NewMockUi()

	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	return Meta{
		Ui:     ui,
		View:   view,
		Config: &cliconfig.Config{ConfigDir: testConfigDir},
		Fs:     afero.NewMemMapFs(),
		Now: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
		Username: func() string { return "tester" },
		RunEditor: func(context.Context, string) error {
			t.Fatal("unexpected editor run")
			return nil
		},
		UserDir: true,
	}, ui, done
}

// testOrigin pushes configdb.TestTableStore to the inmem origin at
// testOriginURL and returns the pushed store.
func testOrigin(t *testing.T, m Meta) *tables.TableStore {
	t.Helper()
	ts := configdb.TestTableStore(t, testOriginURL)
	ts.SetLineage(tables.NewLineage())

	store, err := m.originStore(t.Context(), testOriginURL)
	if err != nil {
		t.Fatal(err)
	}
	res, err := origin.Push(t.Context(), ts, store, origin.PushOptions{First: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pushed {
		t.Fatalf("initial push failed: %s", res.Reason)
	}
	return ts
}

// testLocal seeds the origin and saves a local copy of it, as init does.
func testLocal(t *testing.T, m Meta) *tables.TableStore {
	t.Helper()
	ts := testOrigin(t, m)
	if _, err := m.dirs().Save(t.Context(), ts); err != nil {
		t.Fatal(err)
	}
	return ts
}

// loadLocal reads the local copy of "dgnorth".
func loadLocal(t *testing.T, m Meta) *tables.TableStore {
	t.Helper()
	info, err := m.dirs().Load(t.Context(), "dgnorth", tables.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return info.TableStore
}

// loadOrigin reads the store at testOriginURL.
func loadOrigin(t *testing.T, m Meta) *tables.TableStore {
	t.Helper()
	store, err := m.originStore(t.Context(), testOriginURL)
	if err != nil {
		t.Fatal(err)
	}
	ts, err := store.LoadTableStore(t.Context(), configdb.Definition(), remote.LoadOptions{Options: tables.DefaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

// modifyLocal changes a tier of the local copy and saves it.
func modifyLocal(t *testing.T, m Meta, state string) {
	t.Helper()
	ts := loadLocal(t, m)
	if _, err := ts.MustTable(configdb.TableTiers).Update(tables.Row{
		"tier_name": "DEVNORTH",
		"is_live":   false,
		"state":     state,
		"cache_url": "redis://cache.devnorth.example.com/?prefix=dgnorth",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.dirs().Save(t.Context(), ts); err != nil {
		t.Fatal(err)
	}
}
