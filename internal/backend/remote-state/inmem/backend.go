// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inmem

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// we keep the clients in a package-level variable, so that they can be
// accessed from multiple instances of the backend. This better emulates
// backend instances accessing a single remote data store.
var stores storeMap

func init() {
	Reset()
}

// Reset clears out all existing data.
// This is used to initialize the package during init, as well as between
// tests.
func Reset() {
	stores.Lock()
	defer stores.Unlock()
	stores.m = map[string]*RemoteClient{}
}

// New returns the client for an "inmem://name" URL. Every call with the same
// name returns the same client.
func New(_ context.Context, u *url.URL) (remote.Client, error) {
	name := u.Host + u.Path
	if name == "" {
		return nil, fmt.Errorf("inmem URL %q has no name", u.Redacted())
	}
	return Client(name), nil
}

// Client returns the named client, creating it if needed.
func Client(name string) *RemoteClient {
	stores.Lock()
	defer stores.Unlock()

	c := stores.m[name]
	if c == nil {
		c = &RemoteClient{Name: name}
		stores.m[name] = c
	}
	return c
}

// Names returns the names of all clients created so far.
func Names() []string {
	stores.Lock()
	defer stores.Unlock()

	var names []string
	for name := range stores.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type storeMap struct {
	sync.Mutex
	m map[string]*RemoteClient
}
