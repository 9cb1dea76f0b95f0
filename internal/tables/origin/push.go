// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package origin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// PushOptions are the overrides accepted by Push.
type PushOptions struct {
	// Force writes to origin even if origin changed since the local copy
	// last observed it.
	Force bool

	// First skips reading origin altogether. It is used when creating a
	// new origin store.
	First bool
}

// PushResult is the outcome of Push.
type PushResult struct {
	Pushed bool
	Reason Reason

	// TimeDiff is how far apart the last modifications of origin and of
	// the local copy are, whichever came first, when Reason is
	// ReasonOriginHasChanged and both are known. It is never negative.
	TimeDiff time.Duration
}

// Push writes the local copy to origin unless origin changed since the
// local copy last observed it. After a successful write the local store's
// metadata is refreshed and its base checksum is the new origin checksum;
// on any other outcome the local store is left untouched.
func Push(ctx context.Context, local *tables.TableStore, backend Backend, opts PushOptions) (*PushResult, error) {
	base := local.Meta().BaseChecksum

	if !opts.First {
		var originChecksum string
		var originModified time.Time

		originMeta, err := backend.LoadMeta(ctx)
		switch {
		case errors.Is(err, remote.ErrNotFound):
			log.Printf("[DEBUG] origin: no store at origin")
		case err != nil:
			return nil, fmt.Errorf("reading origin metadata: %w", err)
		default:
			originChecksum = originMeta.Checksum
			originModified = originMeta.LastModified
		}

		if originChecksum != base {
			if !opts.Force {
				ret := &PushResult{Reason: ReasonOriginHasChanged}
				localModified := local.Meta().LastModified
				if !originModified.IsZero() && !localModified.IsZero() {
					ret.TimeDiff = originModified.Sub(localModified).Abs()
				}
				return ret, nil
			}
			log.Printf("[WARN] origin: origin is at %s, not %s; overwriting it", originChecksum, base)
		}
	}

	pushed := local.Clone()
	pushed.SetBaseChecksum("")
	if err := backend.SaveTableStore(ctx, pushed); err != nil {
		return nil, fmt.Errorf("writing origin: %w", err)
	}

	meta := pushed.Meta()
	meta.BaseChecksum = meta.Checksum
	local.SetMeta(meta)
	log.Printf("[INFO] origin: pushed %s", meta.Checksum)

	return &PushResult{Pushed: true, Reason: ReasonPushed}, nil
}
