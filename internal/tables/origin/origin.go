// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package origin synchronizes a local working copy of a table store with
// the origin store it was created from.
//
// Conflicts are detected, not prevented: a pull refuses to discard local
// edits and a push refuses to overwrite origin changes that the local copy
// has not seen, unless the caller overrides the check. Expected divergence
// is reported through PullResult and PushResult; only backend and
// integrity failures are returned as errors.
package origin

import (
	"context"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// Reason explains the outcome of a pull or a push.
type Reason string

const (
	ReasonLocalIsModified  Reason = "local_is_modified"
	ReasonUpToDate         Reason = "up_to_date"
	ReasonPulledFromOrigin Reason = "pulled_from_origin"
	ReasonOriginHasChanged Reason = "origin_has_changed"
	ReasonPushed           Reason = "pushed"
)

// Backend is the origin side of the protocol. *remote.Store implements it.
type Backend interface {
	LoadMeta(ctx context.Context) (*tables.Meta, error)
	LoadTableStore(ctx context.Context, def *tables.Definition, opts remote.LoadOptions) (*tables.TableStore, error)
	SaveTableStore(ctx context.Context, ts *tables.TableStore) error
}

var _ Backend = (*remote.Store)(nil)
