// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package local implements the "file" backend, which keeps the units of a
// table store as files in a single directory.
package local

import (
	"context"
	"net/url"

	"github.com/spf13/afero"

	"github.com/driftconfig/driftconfig/internal/backend"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// New returns the client for a "file" URL, working on the operating
// system's filesystem.
func New(_ context.Context, u *url.URL) (remote.Client, error) {
	dir, err := backend.LocalPath(u)
	if err != nil {
		return nil, err
	}
	return NewClient(afero.NewOsFs(), dir), nil
}

// NewClient returns a client keeping units in dir on the given filesystem.
// The directory is created on the first write.
func NewClient(fs afero.Fs, dir string) *RemoteClient {
	return &RemoteClient{Fs: fs, Dir: dir}
}
