// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package redis implements the "redis" backend, which keeps the units of a
// table store as string keys sharing a prefix:
//
//	redis://host:6379/0?prefix=dgnorth
//
// It is mostly used as a read cache close to the services of a tier.
package redis

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/driftconfig/driftconfig/internal/backend"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

const (
	defaultPort   = "6379"
	defaultPrefix = "driftconfig"
)

// New returns the client for a "redis" URL.
func New(_ context.Context, u *url.URL) (remote.Client, error) {
	opts, prefix, expire, err := parseURL(u)
	if err != nil {
		return nil, err
	}
	c := NewClient(redis.NewClient(opts), prefix)
	c.Expire = expire
	return c, nil
}

func parseURL(u *url.URL) (opts *redis.Options, prefix string, expire time.Duration, err error) {
	if u.Hostname() == "" {
		return nil, "", 0, fmt.Errorf("URL %q has no host", u.Redacted())
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	opts = &redis.Options{
		Addr:        u.Hostname() + ":" + port,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 3 * time.Second,
	}

	if db := strings.Trim(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, "", 0, fmt.Errorf("invalid database number %q in %q", db, u.Redacted())
		}
	}

	if u.User != nil {
		opts.Username = u.User.Username()
		opts.Password, _ = u.User.Password()
	}

	q := u.Query()
	if pw := q.Get("password"); pw != "" {
		contents, err := backend.ReadPathOrContents(pw)
		if err != nil {
			return nil, "", 0, fmt.Errorf("reading redis password: %w", err)
		}
		opts.Password = strings.TrimSpace(contents)
	}

	prefix = q.Get("prefix")
	if prefix == "" {
		prefix = defaultPrefix
	}

	if raw := q.Get("expire"); raw != "" {
		expire, err = time.ParseDuration(raw)
		if err != nil {
			return nil, "", 0, fmt.Errorf("invalid expire value: %w", err)
		}
	}

	return opts, prefix, expire, nil
}
