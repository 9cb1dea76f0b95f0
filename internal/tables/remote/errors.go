// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a backend holds no table store.
var ErrNotFound = errors.New("no table store found")

// ErrMissingTable is returned when a backend holds a table store that lacks
// a unit for one of the tables the definition declares.
var ErrMissingTable = errors.New("table missing from backend")

// BackendUnavailableError reports a failure of the underlying client, as
// opposed to a problem with the data it returned.
type BackendUnavailableError struct {
	// Op is the client operation that failed: "get", "put", "delete" or
	// "list".
	Op string
	// Unit is the unit the operation was working on, empty for "list".
	Unit string
	Err  error
}

func (e *BackendUnavailableError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("backend %s failed: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("backend %s of %q failed: %s", e.Op, e.Unit, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
