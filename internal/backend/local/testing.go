// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package local

import (
	"testing"

	"github.com/spf13/afero"
)

// TestClient returns a client working on an in-memory filesystem, along with
// that filesystem so that tests can inspect and tamper with the files.
func TestClient(t *testing.T) (*RemoteClient, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewClient(fs, "/drift/config/test"), fs
}
