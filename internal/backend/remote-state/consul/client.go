// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package consul

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"strings"

	consulapi "github.com/hashicorp/consul/api"

	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// KV is the subset of the Consul KV API the client uses.
type KV interface {
	Get(key string, q *consulapi.QueryOptions) (*consulapi.KVPair, *consulapi.QueryMeta, error)
	Put(p *consulapi.KVPair, q *consulapi.WriteOptions) (*consulapi.WriteMeta, error)
	Delete(key string, w *consulapi.WriteOptions) (*consulapi.WriteMeta, error)
	Keys(prefix, separator string, q *consulapi.QueryOptions) ([]string, *consulapi.QueryMeta, error)
}

var _ KV = (*consulapi.KV)(nil)

// RemoteClient is a remote client that stores units in Consul.
type RemoteClient struct {
	KV   KV
	Path string
	GZip bool
}

func (c *RemoteClient) Get(ctx context.Context, unit string) (*remote.Payload, error) {
	pair, _, err := c.KV.Get(c.key(unit), (&consulapi.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, nil
	}

	payload := pair.Value
	// If the payload starts with 0x1f, it's gzip, not json
	if len(payload) >= 1 && payload[0] == '\x1f' {
		payload, err = uncompressState(payload)
		if err != nil {
			return nil, err
		}
	}

	md5 := md5.Sum(payload)
	return &remote.Payload{
		Data: payload,
		MD5:  md5[:],
	}, nil
}

func (c *RemoteClient) Put(ctx context.Context, unit string, data []byte) error {
	payload := data
	if c.GZip {
		var err error
		if payload, err = compressState(data); err != nil {
			return err
		}
	}

	_, err := c.KV.Put(&consulapi.KVPair{
		Key:   c.key(unit),
		Value: payload,
	}, (&consulapi.WriteOptions{}).WithContext(ctx))
	return err
}

func (c *RemoteClient) Delete(ctx context.Context, unit string) error {
	_, err := c.KV.Delete(c.key(unit), (&consulapi.WriteOptions{}).WithContext(ctx))
	return err
}

func (c *RemoteClient) List(ctx context.Context) ([]string, error) {
	prefix := c.Path + "/"
	keys, _, err := c.KV.Keys(prefix, "/", (&consulapi.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var units []string
	for _, key := range keys {
		// Consul should ensure this but it doesn't hurt to check again
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		unit := strings.TrimPrefix(key, prefix)
		// Ignore anything with a "/" in it since we store the units
		// directly in a key not a directory.
		if unit == "" || strings.Contains(unit, "/") {
			continue
		}
		units = append(units, unit)
	}
	return units, nil
}

func (c *RemoteClient) key(unit string) string {
	return c.Path + "/" + unit
}

func compressState(data []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	gz := gzip.NewWriter(b)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Flush(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func uncompressState(data []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if _, err := b.ReadFrom(gz); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
