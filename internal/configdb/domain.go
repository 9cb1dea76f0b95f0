// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package configdb

import (
	"errors"
	"fmt"

	"github.com/driftconfig/driftconfig/internal/tables"
)

// ErrNoDomain is returned for a store whose domain table is empty.
var ErrNoDomain = errors.New("configuration database has no domain")

// Domain is the single row of the domain table.
type Domain struct {
	Name        string
	DisplayName string
	Origin      string
}

// GetDomain reads the domain row of a Drift configuration database.
func GetDomain(ts *tables.TableStore) (Domain, error) {
	t, err := ts.GetTable(TableDomain)
	if err != nil {
		return Domain{}, err
	}
	row, ok := t.Single()
	if !ok {
		return Domain{}, ErrNoDomain
	}
	ret := Domain{}
	ret.Name, _ = row["domain_name"].(string)
	ret.DisplayName, _ = row["display_name"].(string)
	ret.Origin, _ = row["origin"].(string)
	if ret.Name == "" {
		return Domain{}, fmt.Errorf("%w: domain_name is not set", ErrNoDomain)
	}
	return ret, nil
}

// SetDomain replaces the domain row.
func SetDomain(ts *tables.TableStore, d Domain) error {
	t, err := ts.GetTable(TableDomain)
	if err != nil {
		return err
	}
	t.Clear()
	_, err = t.Add(tables.Row{
		"domain_name":  d.Name,
		"display_name": d.DisplayName,
		"origin":       d.Origin,
	})
	return err
}

// String returns the domain in the form used by the list and info
// commands.
func (d Domain) String() string {
	return fmt.Sprintf("%s: %q. Origin: %q", d.Name, d.DisplayName, d.Origin)
}
