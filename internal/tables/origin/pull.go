// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package origin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
)

// PullOptions are the overrides accepted by Pull.
type PullOptions struct {
	// IgnoreIfModified pulls even if the local copy has edits that were
	// never pushed. The edits are lost.
	IgnoreIfModified bool

	// Force loads the origin store even if its checksum matches the local
	// copy.
	Force bool
}

// PullResult is the outcome of Pull.
type PullResult struct {
	Pulled bool
	Reason Reason

	// TableStore is the store loaded from origin, with its base checksum
	// set to the origin checksum. It is only set when Reason is
	// ReasonPulledFromOrigin, and it is up to the caller to save it as the
	// new local copy.
	TableStore *tables.TableStore
}

// Pull compares the local copy with origin and loads the origin store if
// it differs. The local store is never modified.
func Pull(ctx context.Context, local *tables.TableStore, backend Backend, opts PullOptions) (*PullResult, error) {
	if local.IsModified() {
		if !opts.IgnoreIfModified {
			log.Printf("[DEBUG] origin: local copy is modified, not pulling")
			return &PullResult{Reason: ReasonLocalIsModified}, nil
		}
		log.Printf("[WARN] origin: local copy is modified, pulling anyway")
	}

	originMeta, err := backend.LoadMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading origin metadata: %w", err)
	}

	checksum := local.Checksum()
	if originMeta.Checksum == checksum && !opts.Force {
		log.Printf("[DEBUG] origin: local copy is up to date at %s", checksum)
		return &PullResult{Pulled: true, Reason: ReasonUpToDate}, nil
	}

	ts, err := backend.LoadTableStore(ctx, local.Definition(), remote.LoadOptions{Options: local.Options()})
	if err != nil {
		return nil, fmt.Errorf("reading origin: %w", err)
	}
	ts.SetBaseChecksum(ts.Meta().Checksum)
	log.Printf("[INFO] origin: pulled %s, local copy was at %s", ts.Meta().Checksum, checksum)

	return &PullResult{Pulled: true, Reason: ReasonPulledFromOrigin, TableStore: ts}, nil
}

// PullLoop calls pull repeatedly for the given duration. Calls start
// interval apart unless a call takes longer than that, in which case the
// next one starts right away. The loop stops at the first error, or when
// ctx is cancelled, in which case it returns the context error.
func PullLoop(ctx context.Context, interval, duration time.Duration, pull func(context.Context) error) error {
	start := time.Now()
	for time.Since(start) < duration {
		iterStart := time.Now()
		if err := pull(ctx); err != nil {
			return err
		}

		wait := max(interval-time.Since(iterStart), 0)
		log.Printf("[DEBUG] origin: waiting %s before the next pull", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	log.Printf("[DEBUG] origin: pull loop completed in %s", time.Since(start))
	return nil
}
