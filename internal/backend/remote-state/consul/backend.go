// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package consul implements the "consul" backend, which keeps the units of
// a table store as keys of the Consul KV store under a common path:
//
//	consul://consul.service:8500/drift/dgnorth?token=~/.consul-token&gzip=true
package consul

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	consulapi "github.com/hashicorp/consul/api"

	"github.com/driftconfig/driftconfig/internal/backend"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// New returns the client for a "consul" URL.
func New(_ context.Context, u *url.URL) (remote.Client, error) {
	config, path, gzip, err := parseURL(u)
	if err != nil {
		return nil, err
	}
	client, err := consulapi.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("configuring Consul client: %w", err)
	}
	return &RemoteClient{
		KV:   client.KV(),
		Path: path,
		GZip: gzip,
	}, nil
}

func parseURL(u *url.URL) (config *consulapi.Config, path string, gzip bool, err error) {
	path = strings.Trim(u.Path, "/")
	if path == "" {
		return nil, "", false, fmt.Errorf("URL %q has no key path", u.Redacted())
	}

	// Configure the client
	config = consulapi.DefaultConfig()
	if u.Host != "" {
		config.Address = u.Host
	}

	q := u.Query()
	if v := q.Get("scheme"); v != "" {
		config.Scheme = v
	}
	if v := q.Get("datacenter"); v != "" {
		config.Datacenter = v
	}
	if v := q.Get("token"); v != "" {
		token, err := backend.ReadPathOrContents(v)
		if err != nil {
			return nil, "", false, fmt.Errorf("reading Consul token: %w", err)
		}
		config.Token = strings.TrimSpace(token)
	}
	if u.User != nil {
		config.HttpAuth = &consulapi.HttpBasicAuth{
			Username: u.User.Username(),
		}
		config.HttpAuth.Password, _ = u.User.Password()
	}

	gzip, err = backend.QueryBool(q, "gzip")
	if err != nil {
		return nil, "", false, err
	}
	return config, path, gzip, nil
}
