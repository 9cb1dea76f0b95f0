// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package origin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/driftconfig/driftconfig/internal/backend/remote-state/inmem"
	_ "github.com/driftconfig/driftconfig/internal/logging"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

// testBackend returns an empty origin whose clock advances a minute on
// every save.
func testBackend(t *testing.T) *remote.Store {
	t.Helper()
	t.Cleanup(inmem.Reset)

	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	s := remote.NewStore(inmem.Client(t.Name()), tablefile.JSON)
	s.Now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	return s
}

// testOrigin returns an origin holding tables.TestTableStore and a local
// copy pulled from it.
func testOrigin(t *testing.T) (*remote.Store, *tables.TableStore) {
	t.Helper()
	backend := testBackend(t)

	ts := tables.TestTableStore(t)
	res, err := Push(t.Context(), ts, backend, PushOptions{First: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pushed {
		t.Fatalf("initial push failed: %s", res.Reason)
	}
	return backend, ts
}

func pullCopy(t *testing.T, backend Backend) *tables.TableStore {
	t.Helper()
	empty := tables.NewTableStore(tables.TestDefinition(), tables.DefaultOptions())
	empty.RefreshMetadata(time.Time{})

	res, err := Pull(t.Context(), empty, backend, PullOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reason != ReasonPulledFromOrigin {
		t.Fatalf("wrong reason %q, want %q", res.Reason, ReasonPulledFromOrigin)
	}
	return res.TableStore
}

func modify(t *testing.T, ts *tables.TableStore, name string) {
	t.Helper()
	if _, err := ts.MustTable("items").Update(tables.Row{"id": 1, "name": name, "owner": "alice"}); err != nil {
		t.Fatal(err)
	}
}

func TestPull(t *testing.T) {
	backend, _ := testOrigin(t)
	originMeta, err := backend.LoadMeta(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	local := pullCopy(t, backend)
	if got := local.Checksum(); got != originMeta.Checksum {
		t.Fatalf("pulled checksum %s, want %s", got, originMeta.Checksum)
	}
	if got := local.Meta().BaseChecksum; got != originMeta.Checksum {
		t.Fatalf("base checksum %s, want %s", got, originMeta.Checksum)
	}
	if local.IsModified() {
		t.Fatal("freshly pulled copy is modified")
	}
}

func TestPull_idempotent(t *testing.T) {
	backend, _ := testOrigin(t)
	local := pullCopy(t, backend)
	before := local.Checksum()

	res, err := Pull(t.Context(), local, backend, PullOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := &PullResult{Pulled: true, Reason: ReasonUpToDate}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("wrong result\n%s", diff)
	}
	if got := local.Checksum(); got != before {
		t.Fatalf("checksum changed from %s to %s", before, got)
	}
}

func TestPull_force(t *testing.T) {
	backend, _ := testOrigin(t)
	local := pullCopy(t, backend)

	res, err := Pull(t.Context(), local, backend, PullOptions{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pulled || res.Reason != ReasonPulledFromOrigin {
		t.Fatalf("wrong result %#v", res)
	}
	if got, want := res.TableStore.Checksum(), local.Checksum(); got != want {
		t.Fatalf("pulled checksum %s, want %s", got, want)
	}
}

func TestPull_localIsModified(t *testing.T) {
	backend, _ := testOrigin(t)
	local := pullCopy(t, backend)
	originChecksum := local.Checksum()
	modify(t, local, "edited")
	edited := local.Checksum()

	res, err := Pull(t.Context(), local, backend, PullOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := &PullResult{Pulled: false, Reason: ReasonLocalIsModified}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("wrong result\n%s", diff)
	}
	if got := local.Checksum(); got != edited {
		t.Fatal("local copy was changed by a refused pull")
	}

	res, err = Pull(t.Context(), local, backend, PullOptions{IgnoreIfModified: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pulled || res.Reason != ReasonPulledFromOrigin {
		t.Fatalf("wrong result %#v", res)
	}
	if got := res.TableStore.Checksum(); got != originChecksum {
		t.Fatalf("pulled checksum %s, want %s", got, originChecksum)
	}
}

func TestPull_noOrigin(t *testing.T) {
	backend := testBackend(t)
	local := tables.TestTableStore(t)

	_, err := Pull(t.Context(), local, backend, PullOptions{})
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPush(t *testing.T) {
	backend, _ := testOrigin(t)
	local := pullCopy(t, backend)
	modify(t, local, "edited")

	res, err := Push(t.Context(), local, backend, PushOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := &PushResult{Pushed: true, Reason: ReasonPushed}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("wrong result\n%s", diff)
	}

	originMeta, err := backend.LoadMeta(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if originMeta.Checksum != local.Checksum() {
		t.Fatalf("origin checksum %s, want %s", originMeta.Checksum, local.Checksum())
	}
	if originMeta.BaseChecksum != "" {
		t.Fatalf("origin carries a base checksum %q", originMeta.BaseChecksum)
	}
	if got := local.Meta().BaseChecksum; got != originMeta.Checksum {
		t.Fatalf("base checksum %s, want %s", got, originMeta.Checksum)
	}
	if local.IsModified() {
		t.Fatal("local copy is modified after push")
	}

	// Nothing changed on either side since.
	res, err = Push(t.Context(), local, backend, PushOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pushed {
		t.Fatalf("second push failed: %s", res.Reason)
	}
}

func TestPush_originHasChanged(t *testing.T) {
	backend, _ := testOrigin(t)
	a := pullCopy(t, backend)
	b := pullCopy(t, backend)

	modify(t, a, "from a")
	if res, err := Push(t.Context(), a, backend, PushOptions{}); err != nil || !res.Pushed {
		t.Fatalf("push from a: %#v, %v", res, err)
	}
	originMeta, err := backend.LoadMeta(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	modify(t, b, "from b")
	metaBefore := b.Meta()
	res, err := Push(t.Context(), b, backend, PushOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := &PushResult{
		Pushed:   false,
		Reason:   ReasonOriginHasChanged,
		TimeDiff: originMeta.LastModified.Sub(metaBefore.LastModified),
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("wrong result\n%s", diff)
	}
	if want.TimeDiff <= 0 {
		t.Fatalf("expected origin to be newer, got time diff %s", want.TimeDiff)
	}
	if diff := cmp.Diff(metaBefore, b.Meta()); diff != "" {
		t.Fatalf("refused push changed local meta\n%s", diff)
	}
	if got, _ := backend.LoadMeta(t.Context()); got.Checksum != originMeta.Checksum {
		t.Fatal("refused push changed origin")
	}

	res, err = Push(t.Context(), b, backend, PushOptions{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pushed || res.Reason != ReasonPushed {
		t.Fatalf("wrong result %#v", res)
	}
	originMeta, err = backend.LoadMeta(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Meta().BaseChecksum; got != originMeta.Checksum {
		t.Fatalf("base checksum %s, want origin checksum %s", got, originMeta.Checksum)
	}
}

func TestPush_originHasChangedLocalNewer(t *testing.T) {
	backend, _ := testOrigin(t)
	a := pullCopy(t, backend)
	b := pullCopy(t, backend)

	modify(t, a, "from a")
	if res, err := Push(t.Context(), a, backend, PushOptions{}); err != nil || !res.Pushed {
		t.Fatalf("push from a: %#v, %v", res, err)
	}
	originMeta, err := backend.LoadMeta(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	// b is edited an hour after a pushed.
	modify(t, b, "from b")
	b.RefreshMetadata(originMeta.LastModified.Add(time.Hour))

	res, err := Push(t.Context(), b, backend, PushOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := &PushResult{
		Pushed:   false,
		Reason:   ReasonOriginHasChanged,
		TimeDiff: time.Hour,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("wrong result\n%s", diff)
	}
}

func TestPush_bootstrap(t *testing.T) {
	backend := testBackend(t)
	local := tables.TestTableStore(t)

	res, err := Push(t.Context(), local, backend, PushOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pushed {
		t.Fatalf("push to an empty origin failed: %s", res.Reason)
	}
}

func TestPush_originMissing(t *testing.T) {
	backend := testBackend(t)
	local := tables.TestTableStore(t)
	local.SetBaseChecksum("previously-observed")

	res, err := Push(t.Context(), local, backend, PushOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := &PushResult{Pushed: false, Reason: ReasonOriginHasChanged}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("wrong result\n%s", diff)
	}
}

type failingBackend struct {
	*remote.Store
	err error
}

func (b failingBackend) SaveTableStore(context.Context, *tables.TableStore) error {
	return b.err
}

func TestPush_writeFails(t *testing.T) {
	backend, _ := testOrigin(t)
	local := pullCopy(t, backend)
	modify(t, local, "edited")
	metaBefore := local.Meta()

	failure := &remote.BackendUnavailableError{Op: "put", Unit: "items.json", Err: errors.New("disk full")}
	_, err := Push(t.Context(), local, failingBackend{backend, failure}, PushOptions{})
	var target *remote.BackendUnavailableError
	if !errors.As(err, &target) {
		t.Fatalf("expected BackendUnavailableError, got %v", err)
	}
	if diff := cmp.Diff(metaBefore, local.Meta()); diff != "" {
		t.Fatalf("failed push changed local meta\n%s", diff)
	}
}

func TestPullLoop(t *testing.T) {
	t.Run("stops on error", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := PullLoop(t.Context(), 0, time.Hour, func(context.Context) error {
			calls++
			if calls == 3 {
				return boom
			}
			return nil
		})
		if !errors.Is(err, boom) {
			t.Fatalf("wrong error %v", err)
		}
		if calls != 3 {
			t.Fatalf("pulled %d times, want 3", calls)
		}
	})
	t.Run("stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0
		err := PullLoop(ctx, time.Hour, time.Hour, func(context.Context) error {
			calls++
			cancel()
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("wrong error %v", err)
		}
		if calls != 1 {
			t.Fatalf("pulled %d times, want 1", calls)
		}
	})
	t.Run("bounded duration", func(t *testing.T) {
		calls := 0
		err := PullLoop(t.Context(), 20*time.Millisecond, 50*time.Millisecond, func(context.Context) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if calls < 2 || calls > 4 {
			t.Fatalf("pulled %d times in 50ms at a 20ms interval", calls)
		}
	})
	t.Run("zero duration", func(t *testing.T) {
		err := PullLoop(t.Context(), time.Second, 0, func(context.Context) error {
			t.Fatal("pulled")
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	})
}
