// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package backend

import (
	"io"
	"net/url"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestReadPathOrContents_Path(t *testing.T) {
	f := testTempFile(t)

	if _, err := io.WriteString(f, "foobar"); err != nil {
		t.Fatalf("err: %s", err)
	}
	f.Close()

	contents, err := ReadPathOrContents(f.Name())

	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if contents != "foobar" {
		t.Fatalf("expected contents %s, got %s", "foobar", contents)
	}
}

func TestReadPathOrContents_TildePath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	f := testTempFile(t, home)

	if _, err := io.WriteString(f, "foobar"); err != nil {
		t.Fatalf("err: %s", err)
	}
	f.Close()

	r := strings.NewReplacer(home, "~")
	homePath := r.Replace(f.Name())
	contents, err := ReadPathOrContents(homePath)

	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if contents != "foobar" {
		t.Fatalf("expected contents %s, got %s", "foobar", contents)
	}
}

func TestRead_PathNoPermission(t *testing.T) {
	// This skip condition is intended to get this test out of the way of users
	// who are building and testing driftconfig from within a Linux-based Docker
	// container, where it is common for processes to be running as effectively
	// root within the container.
	if u, err := user.Current(); err == nil && u.Uid == "0" {
		t.Skip("This test is invalid when running as root, since root can read every file")
	}

	f := testTempFile(t)

	if _, err := io.WriteString(f, "foobar"); err != nil {
		t.Fatalf("err: %s", err)
	}
	f.Close()

	if runtime.GOOS == "windows" {
		currentUser, err := user.Current()
		if err != nil {
			t.Fatalf("failed to get current user: %s", err)
		}
		acl, _ := exec.Command("icacls", f.Name()).CombinedOutput()
		t.Logf("Before /deny %s", acl)

		cmd := exec.Command("icacls", f.Name(), "/deny", currentUser.Username+":(R)")
		if err := cmd.Run(); err != nil {
			t.Fatalf("err: %s", err)
		}

		acl, _ = exec.Command("icacls", f.Name()).CombinedOutput()
		t.Logf("After /deny %s", acl)
		defer func() {
			acl, _ := exec.Command("icacls", f.Name(), "/remove:d", currentUser.Username).CombinedOutput()
			t.Logf("After remove:d %s", acl)
		}()
	} else {
		if err := os.Chmod(f.Name(), 0); err != nil {
			t.Fatalf("err: %s", err)
		}
	}

	contents, err := ReadPathOrContents(f.Name())

	if err == nil {
		t.Fatal("Expected error, got none!")
	}
	if contents != "" {
		t.Fatalf("expected contents %s, got %s", "", contents)
	}
}

func TestReadPathOrContents_Contents(t *testing.T) {
	input := "hello"

	contents, err := ReadPathOrContents(input)

	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if contents != input {
		t.Fatalf("expected contents %s, got %s", input, contents)
	}
}

func TestReadPathOrContents_TildeContents(t *testing.T) {
	input := "~/hello/notafile"

	contents, err := ReadPathOrContents(input)

	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if contents != input {
		t.Fatalf("expected contents %s, got %s", input, contents)
	}
}

func TestLocalPath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Fatalf("err: %s", err)
	}

	tests := map[string]string{
		"file:///var/lib/drift": "/var/lib/drift",
		"file://~/drift/config": filepath.Join(home, "drift/config"),
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatal(err)
			}
			got, err := LocalPath(u)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}

	if _, err := LocalPath(&url.URL{Scheme: "file"}); err == nil {
		t.Fatal("expected an error for a URL without a path")
	}
}

func TestQueryBool(t *testing.T) {
	q := url.Values{"a": {"true"}, "b": {"0"}, "c": {"maybe"}}

	if v, err := QueryBool(q, "a"); err != nil || !v {
		t.Errorf("a: got %t, %v", v, err)
	}
	if v, err := QueryBool(q, "b"); err != nil || v {
		t.Errorf("b: got %t, %v", v, err)
	}
	if v, err := QueryBool(q, "missing"); err != nil || v {
		t.Errorf("missing: got %t, %v", v, err)
	}
	if _, err := QueryBool(q, "c"); err == nil {
		t.Error("c: expected an error")
	}
}

// Returns an open tempfile based at baseDir.
//
// The temporary file is cleaned up automatically when the calling
// test is complete.
func testTempFile(t testing.TB, baseDir ...string) *os.File {
	t.Helper()

	base := ""
	if len(baseDir) == 1 {
		base = baseDir[0]
	}
	f, err := os.CreateTemp(base, "tf")
	if err != nil {
		t.Fatalf("err: %s", err)
	}

	t.Cleanup(func() {
		os.Remove(f.Name())
	})
	return f
}
