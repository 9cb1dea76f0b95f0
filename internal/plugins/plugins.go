// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-version"
)

// Deployable describes an installed deployable plugin.
type Deployable struct {
	Name    string
	Summary string

	// Version is nil when the plugin does not declare one.
	Version *version.Version
	Tags    []string
}

// VersionString returns the plugin version, or an empty string when it is
// not known.
func (d Deployable) VersionString() string {
	if d.Version == nil {
		return ""
	}
	return d.Version.String()
}

// Registry gives access to the installed deployable plugins.
type Registry interface {
	// Deployables returns every registered plugin sorted by name.
	Deployables() []Deployable

	// Lookup returns the named plugin.
	Lookup(name string) (Deployable, bool)
}

// NewRegistry returns a registry holding the given plugins. Plugin names
// must be unique.
func NewRegistry(deployables ...Deployable) (Registry, error) {
	r := &registry{
		deployables: make(map[string]Deployable, len(deployables)),
	}
	for _, d := range deployables {
		if err := r.register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// registry is the default Registry implementation.
type registry struct {
	lock        sync.Mutex
	deployables map[string]Deployable
}

func (r *registry) register(d Deployable) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if d.Name == "" {
		return fmt.Errorf("deployable plugin without a name")
	}
	if _, exists := r.deployables[d.Name]; exists {
		return fmt.Errorf("deployable plugin %q is declared more than once", d.Name)
	}
	r.deployables[d.Name] = d
	return nil
}

func (r *registry) Deployables() []Deployable {
	r.lock.Lock()
	defer r.lock.Unlock()

	ret := make([]Deployable, 0, len(r.deployables))
	for _, d := range r.deployables {
		ret = append(ret, d)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Name < ret[j].Name
	})
	return ret
}

func (r *registry) Lookup(name string) (Deployable, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	d, ok := r.deployables[name]
	return d, ok
}
