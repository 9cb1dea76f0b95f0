// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package remote stores table stores in a backend. A backend only needs to
// implement Client, a flat namespace of named units; Store maps a table
// store onto those units.
package remote

import (
	"context"
)

// Client is the interface that must be implemented for a backend to be
// used as the storage of table stores.
type Client interface {
	// Get returns the content of the named unit, or nil and no error if the
	// unit does not exist.
	Get(ctx context.Context, unit string) (*Payload, error)
	// Put creates or replaces the named unit.
	Put(ctx context.Context, unit string, data []byte) error
	// Delete removes the named unit. Deleting a unit that does not exist
	// is not an error.
	Delete(ctx context.Context, unit string) error
	// List returns the names of all units, in no particular order.
	List(ctx context.Context) ([]string, error)
}

// Payload is the return value from the remote state storage.
type Payload struct {
	MD5  []byte
	Data []byte
}
