// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inmem

import (
	"context"
	"crypto/md5"
	"maps"
	"slices"
	"sync"

	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// RemoteClient is a remote client that stores data in memory for testing.
type RemoteClient struct {
	Name string

	mu    sync.Mutex
	units map[string]*remote.Payload
}

func (c *RemoteClient) Get(_ context.Context, unit string) (*remote.Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.units[unit]
	if !ok {
		return nil, nil
	}
	return &remote.Payload{
		Data: slices.Clone(p.Data),
		MD5:  p.MD5,
	}, nil
}

func (c *RemoteClient) Put(_ context.Context, unit string, data []byte) error {
	md5 := md5.Sum(data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.units == nil {
		c.units = make(map[string]*remote.Payload)
	}
	c.units[unit] = &remote.Payload{
		Data: slices.Clone(data),
		MD5:  md5[:],
	}
	return nil
}

func (c *RemoteClient) Delete(_ context.Context, unit string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.units, unit)
	return nil
}

func (c *RemoteClient) List(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Collect(maps.Keys(c.units)), nil
}
