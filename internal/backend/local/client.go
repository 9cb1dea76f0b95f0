// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package local

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// RemoteClient stores each unit as a file named after it.
type RemoteClient struct {
	Fs  afero.Fs
	Dir string
}

func (c *RemoteClient) Get(_ context.Context, unit string) (*remote.Payload, error) {
	path, err := c.path(unit)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(c.Fs, path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sum := md5.Sum(data)
	return &remote.Payload{
		Data: data,
		MD5:  sum[:],
	}, nil
}

// Put writes the unit to a temporary file in the same directory and then
// renames it into place, so that readers never observe a partial unit.
func (c *RemoteClient) Put(_ context.Context, unit string, data []byte) error {
	path, err := c.path(unit)
	if err != nil {
		return err
	}
	if err := c.Fs.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}

	f, err := afero.TempFile(c.Fs, c.Dir, ".tmp-"+unit+"-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		c.Fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		c.Fs.Remove(tmp)
		return err
	}
	if err := c.Fs.Rename(tmp, path); err != nil {
		c.Fs.Remove(tmp)
		return err
	}
	log.Printf("[TRACE] local: wrote %d bytes to %s", len(data), path)
	return nil
}

func (c *RemoteClient) Delete(_ context.Context, unit string) error {
	path, err := c.path(unit)
	if err != nil {
		return err
	}
	if err := c.Fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *RemoteClient) List(ctx context.Context) ([]string, error) {
	entries, err := afero.ReadDir(c.Fs, c.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var units []string
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue // We only care about regular files
		}
		name := entry.Name()
		if len(name) > 5 && name[:5] == ".tmp-" {
			continue // leftover of an interrupted write
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		units = append(units, name)
	}
	return units, nil
}

func (c *RemoteClient) path(unit string) (string, error) {
	if unit == "" || unit != filepath.Base(unit) || unit == "." || unit == ".." {
		return "", fmt.Errorf("invalid unit name %q", unit)
	}
	return filepath.Join(c.Dir, unit), nil
}
