// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package redis

import (
	"context"
	"crypto/md5"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// API is the subset of the Redis commands the client uses.
type API interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

var _ API = (*redis.Client)(nil)

// RemoteClient stores each unit under the key "<prefix>:<unit>".
type RemoteClient struct {
	api    API
	prefix string

	// Expire is the time to live of written keys; zero means they never
	// expire.
	Expire time.Duration
}

// NewClient returns a client storing units through api under prefix.
func NewClient(api API, prefix string) *RemoteClient {
	return &RemoteClient{api: api, prefix: prefix}
}

func (c *RemoteClient) Get(ctx context.Context, unit string) (*remote.Payload, error) {
	data, err := c.api.Get(ctx, c.key(unit)).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (c *RemoteClient) Put(ctx context.Context, unit string, data []byte) error {
	log.Printf("[DEBUG] redis: setting %s (%d bytes)", c.key(unit), len(data))
	return c.api.Set(ctx, c.key(unit), data, c.Expire).Err()
}

func (c *RemoteClient) Delete(ctx context.Context, unit string) error {
	return c.api.Del(ctx, c.key(unit)).Err()
}

func (c *RemoteClient) List(ctx context.Context) ([]string, error) {
	const count = 100

	match := c.key("*")
	seen := make(map[string]bool)
	var units []string
	var cursor uint64
	for {
		keys, next, err := c.api.Scan(ctx, cursor, match, count).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			// SCAN may return a key more than once.
			if seen[key] {
				continue
			}
			seen[key] = true
			units = append(units, strings.TrimPrefix(key, c.prefix+":"))
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return units, nil
}

func (c *RemoteClient) key(unit string) string {
	return c.prefix + ":" + unit
}
