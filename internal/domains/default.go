// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package domains

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	backendInit "github.com/driftconfig/driftconfig/internal/backend/init"
	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// ConfigURLEnvVar names the environment variable selecting the default
// configuration, either by domain name or by backend URL.
const ConfigURLEnvVar = "DRIFT_CONFIG_URL"

// ErrNoDefault is returned when the default configuration cannot be
// determined.
var ErrNoDefault = errors.New("no default configuration")

// Default is the configuration that commands operate on when not given a
// domain.
type Default struct {
	TableStore *tables.TableStore
	Domain     configdb.Domain

	// Local is set when the configuration is a local copy.
	Local *Info

	// URL is the backend URL the configuration was read from when it is
	// not a local copy.
	URL string

	// FromEnv is set when the configuration was selected by
	// ConfigURLEnvVar.
	FromEnv bool
}

// GetDefault resolves the default configuration. selector is the value of
// ConfigURLEnvVar or of the corresponding command line option: a domain
// name selects a local copy, a URL a configuration at a backend. Without a
// selector the only local copy is the default.
func (d *Dirs) GetDefault(ctx context.Context, selector string, opts tables.Options) (*Default, error) {
	if selector == "" {
		infos, err := d.GetDomains(ctx, opts)
		if err != nil {
			log.Printf("[WARN] domains: %s", err)
		}
		switch len(infos) {
		case 0:
			return nil, fmt.Errorf("%w: there is no configuration in %s", ErrNoDefault, d.Root())
		case 1:
			return &Default{TableStore: infos[0].TableStore, Domain: infos[0].Domain, Local: infos[0]}, nil
		default:
			names := make([]string, len(infos))
			for i, info := range infos {
				names[i] = info.Domain.Name
			}
			return nil, fmt.Errorf("%w: there are %d configurations in %s (%s); select one with %s", ErrNoDefault, len(infos), d.Root(), strings.Join(names, ", "), ConfigURLEnvVar)
		}
	}

	if !strings.Contains(selector, "://") {
		info, err := d.Load(ctx, selector, opts)
		if err != nil {
			return nil, err
		}
		return &Default{TableStore: info.TableStore, Domain: info.Domain, Local: info, FromEnv: true}, nil
	}

	client, err := backendInit.New(ctx, selector)
	if err != nil {
		return nil, err
	}
	ts, err := remote.NewStore(client, d.Format).LoadTableStore(ctx, configdb.Definition(), remote.LoadOptions{Options: opts})
	if err != nil {
		return nil, fmt.Errorf("loading configuration from %s: %w", selector, err)
	}
	domain, err := configdb.GetDomain(ts)
	if err != nil {
		return nil, fmt.Errorf("loading configuration from %s: %w", selector, err)
	}
	return &Default{TableStore: ts, Domain: domain, URL: selector, FromEnv: true}, nil
}
