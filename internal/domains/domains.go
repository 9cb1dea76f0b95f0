// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package domains manages the local working copies of Drift configuration
// databases. Each copy lives in a directory named after its domain under a
// configuration root, which is either a per-user or a site-wide directory.
package domains

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/driftconfig/driftconfig/internal/backend/local"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

// ErrDomainNotFound is returned when no local copy exists for a domain.
var ErrDomainNotFound = errors.New("no local configuration for domain")

// Dirs locates the local working copies.
type Dirs struct {
	Fs afero.Fs

	// User is the per-user configuration root, normally ~/.drift/config.
	User string

	// Site is the machine-wide configuration root.
	Site string

	// UseUser selects the per-user root over the site root.
	UseUser bool

	// Format is the format local copies are written in.
	Format tablefile.Format
}

// Root returns the configuration root in use.
func (d *Dirs) Root() string {
	if d.UseUser || d.Site == "" {
		return d.User
	}
	return d.Site
}

// DomainDir returns the directory of the local copy of the named domain.
func (d *Dirs) DomainDir(name string) string {
	return filepath.Join(d.Root(), name)
}

// Store returns the store that reads and writes the local copy of the
// named domain.
func (d *Dirs) Store(name string) *remote.Store {
	return remote.NewStore(local.NewClient(d.Fs, d.DomainDir(name)), d.Format)
}

// Info describes a local working copy.
type Info struct {
	Domain     configdb.Domain
	Path       string
	TableStore *tables.TableStore
}

func (i *Info) String() string {
	return fmt.Sprintf("%s: %q at %q. Origin: %q", i.Domain.Name, i.Domain.DisplayName, i.Path, i.Domain.Origin)
}

// Load reads the local copy of the named domain. It returns an error
// wrapping ErrDomainNotFound when there is none.
func (d *Dirs) Load(ctx context.Context, name string, opts tables.Options) (*Info, error) {
	ts, err := d.Store(name).LoadTableStore(ctx, configdb.Definition(), remote.LoadOptions{Options: opts})
	if errors.Is(err, remote.ErrNotFound) {
		return nil, fmt.Errorf("%w %q in %s", ErrDomainNotFound, name, d.Root())
	}
	if err != nil {
		return nil, fmt.Errorf("loading local configuration %q: %w", name, err)
	}
	domain, err := configdb.GetDomain(ts)
	if err != nil {
		return nil, fmt.Errorf("loading local configuration %q: %w", name, err)
	}
	if domain.Name != name {
		log.Printf("[WARN] domains: directory %q holds domain %q", d.DomainDir(name), domain.Name)
	}
	return &Info{Domain: domain, Path: d.DomainDir(name), TableStore: ts}, nil
}

// Save writes ts as the local copy of its domain and returns the
// directory it was written to.
func (d *Dirs) Save(ctx context.Context, ts *tables.TableStore) (string, error) {
	domain, err := configdb.GetDomain(ts)
	if err != nil {
		return "", err
	}
	if err := d.Store(domain.Name).SaveTableStore(ctx, ts); err != nil {
		return "", fmt.Errorf("saving local configuration %q: %w", domain.Name, err)
	}
	return d.DomainDir(domain.Name), nil
}

// GetDomains loads every local copy under the configuration root, sorted
// by domain name. Copies that fail to load are left out and their errors
// returned together with the copies that did load.
func (d *Dirs) GetDomains(ctx context.Context, opts tables.Options) ([]*Info, error) {
	root := d.Root()
	entries, err := afero.ReadDir(d.Fs, root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ret []*Info
	var errs *multierror.Error
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := d.Load(ctx, entry.Name(), opts)
		if errors.Is(err, ErrDomainNotFound) {
			log.Printf("[TRACE] domains: %q holds no configuration", filepath.Join(root, entry.Name()))
			continue
		}
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		ret = append(ret, info)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Domain.Name < ret[j].Domain.Name
	})
	return ret, errs.ErrorOrNil()
}
