// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// defaultFlagSet creates a FlagSet with the common settings to override
// the flag package's noisy defaults.
func defaultFlagSet(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = func() {}
	return f
}

// parseFlags parses args into f. Long flags may be given with a single dash,
// so "-force" and "--force" are the same flag.
func parseFlags(f *pflag.FlagSet, args []string) tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics
	if err := f.Parse(longFlags(f, args, true)); err != nil {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to parse command-line flags",
			err.Error(),
		))
	}
	return diags
}

// longFlags rewrites "-name" and "-name=value" to their double dash form for
// every name that is a long flag of f. The rewrite stops at "--", and at the
// first positional argument unless interspersed is set.
func longFlags(f *pflag.FlagSet, args []string, interspersed bool) []string {
	ret := make([]string, len(args))
	copy(ret, args)
	for i := 0; i < len(ret); i++ {
		arg := ret[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			if !interspersed {
				break
			}
			continue
		}

		var flag *pflag.Flag
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case strings.HasPrefix(arg, "--"):
			flag = f.Lookup(name)
		case len(name) == 1:
			flag = f.ShorthandLookup(name)
		default:
			if flag = f.Lookup(name); flag != nil {
				ret[i] = "-" + arg
			}
		}

		// The value of a flag given as a separate argument is not a
		// positional argument.
		if flag != nil && flag.NoOptDefVal == "" && !hasValue {
			i++
		}
	}
	return ret
}

// parseArgs parses args into f and checks that between min and max
// positional arguments remain. A negative max allows any number.
func parseArgs(f *pflag.FlagSet, args []string, min, max int, usage string) ([]string, tfdiags.Diagnostics) {
	diags := parseFlags(f, args)
	if diags.HasErrors() {
		return f.Args(), diags
	}
	pos, moreDiags := positional(f, min, max, usage)
	return pos, diags.Append(moreDiags)
}

// positional checks the number of positional arguments left after parsing.
func positional(f *pflag.FlagSet, min, max int, usage string) ([]string, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	args := f.Args()
	switch {
	case len(args) < min:
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Not enough arguments",
			fmt.Sprintf("Expected %s.", usage),
		))
	case max >= 0 && len(args) > max:
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Too many command line arguments",
			fmt.Sprintf("Expected %s.", usage),
		))
	}
	return args, diags
}

// nth returns the i-th positional argument, or an empty string.
func nth(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
