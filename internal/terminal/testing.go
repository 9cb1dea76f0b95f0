// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"
)

// StreamsForTesting is a helper for test code that is aiming to test functions
// that interact with the input and output streams.
//
// This particular function is for the simple case of a function that only
// produces output: the returned input stream is connected to the system's
// "null device", as if a user had run driftconfig with I/O redirection like
// </dev/null on Unix. It also configures the output as a pipe rather than
// as a terminal, and so can't be used to test whether code is able to adapt
// to different terminal widths.
//
// The return values are a Streams object ready to pass into a function under
// test, and a callback function for the test itself to call afterwards
// in order to obtain any characters that were written to the streams. Once
// you call the close function, the Streams object becomes invalid and must
// not be used anymore. Any caller of this function _must_ call close before
// its test concludes, even if it doesn't intend to check the output, or else
// it will leak resources.
func StreamsForTesting(t *testing.T) (streams *Streams, close func(*testing.T) *TestOutput) {
	stdout, stdoutW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %s", err)
	}
	stderr, stderrW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stderr pipe: %s", err)
	}
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("failed to open the null device: %s", err)
	}

	streams = &Streams{
		Stdout: &OutputStream{File: stdoutW},
		Stderr: &OutputStream{File: stderrW},
		Stdin:  &InputStream{File: devNull},
	}

	testOutput := &TestOutput{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&testOutput.stdout, stdout)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&testOutput.stderr, stderr)
	}()

	close = func(t *testing.T) *TestOutput {
		t.Helper()
		_ = stdoutW.Close()
		_ = stderrW.Close()
		wg.Wait()
		_ = stdout.Close()
		_ = stderr.Close()
		_ = devNull.Close()
		return testOutput
	}

	return streams, close
}

// TestOutput is a type used to return the results from the various stream
// testing helpers. It encapsulates any captured writes to the output and
// error streams.
type TestOutput struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// Stdout returns a string representation of all of the bytes that were
// written to the stdout stream.
func (o *TestOutput) Stdout() string {
	return o.stdout.String()
}

// Stderr returns a string representation of all of the bytes that were
// written to the stderr stream.
func (o *TestOutput) Stderr() string {
	return o.stderr.String()
}

// All returns the stdout and stderr output concatenated.
func (o *TestOutput) All() string {
	return o.stdout.String() + o.stderr.String()
}
