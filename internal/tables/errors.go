// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package tables

import (
	"errors"
	"fmt"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

var (
	// ErrUnknownTable is matched by UnknownTableError.
	ErrUnknownTable = errors.New("unknown table")

	// ErrDuplicateKey is returned by Table.Add when a row with the same
	// primary key already exists.
	ErrDuplicateKey = errors.New("duplicate primary key")

	// ErrNoPrimaryKey is returned when a row does not carry every field of
	// its table's primary key, or a table definition declares none.
	ErrNoPrimaryKey = errors.New("primary key undefined")

	// ErrIntegrity is matched by IntegrityError.
	ErrIntegrity = errors.New("integrity check failed")
)

// UnknownTableError is returned when a table name is not registered in the
// definition a TableStore was created from.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Name)
}

func (e *UnknownTableError) Is(target error) bool {
	return target == ErrUnknownTable
}

// IntegrityError is returned when integrity checking is enabled and a row
// violates its table's schema or references a row that does not exist.
// Diags names every offending table, row and field.
type IntegrityError struct {
	Diags tfdiags.Diagnostics
}

func (e *IntegrityError) Error() string {
	var errs tfdiags.Diagnostics
	for _, diag := range e.Diags {
		if diag.Severity() == tfdiags.Error {
			errs = append(errs, diag)
		}
	}
	switch len(errs) {
	case 0:
		return ErrIntegrity.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrIntegrity, errs.Err())
	default:
		return fmt.Sprintf("%s: %d problems found", ErrIntegrity, len(errs))
	}
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

func (e *IntegrityError) Unwrap() error {
	return e.Diags.Err()
}
