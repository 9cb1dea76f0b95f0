// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"fmt"
	"os"
	"runtime/debug"
)

// This output is shown if a panic happens.
const panicOutput = `
!!!!!!!!!!!!!!!!!!!!!!!!!!! DRIFTCONFIG CRASH !!!!!!!!!!!!!!!!!!!!!!!!!!!!

driftconfig crashed! This is always indicative of a bug within driftconfig.
Please report the crash with the stack trace shown below, and include the
command you ran and the URL scheme of the backend involved.

When reporting bugs, please include your driftconfig version, the stack trace
shown below, and any additional information which may help replicate the issue.

!!!!!!!!!!!!!!!!!!!!!!!!!!! DRIFTCONFIG CRASH !!!!!!!!!!!!!!!!!!!!!!!!!!!!

`

// In case multiple goroutines panic concurrently, ensure only the first one
// recovered by PanicHandler starts printing.
var panicMutex = make(chan struct{}, 1)

// PanicHandler is called to recover from an internal panic in driftconfig, and
// augments the standard stack trace with a more user friendly error message.
// PanicHandler must be called as a deferred function, and must be the first
// defer called at the start of a new goroutine.
func PanicHandler() {
	// Have all managed goroutines checkin here, and prevent them from exiting
	// if there's a panic in progress. While this can't lock the entire runtime
	// to block progress, we can prevent some cases where driftconfig may return
	// early before the panic has been printed out.
	panicMutex <- struct{}{}
	defer func() { <-panicMutex }()

	recovered := recover()
	if recovered == nil {
		return
	}

	fmt.Fprint(os.Stderr, panicOutput)
	fmt.Fprint(os.Stderr, recovered, "\n")

	// When called from a deferred function, debug.PrintStack will include the
	// full stack from the point of the pending panic.
	debug.PrintStack()

	// An exit code of 11 keeps us out of the way of the command exit codes,
	// and is the same code as SIGSEGV.
	os.Exit(11)
}
