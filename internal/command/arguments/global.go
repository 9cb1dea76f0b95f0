// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"github.com/spf13/pflag"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// Global represents the options given before the subcommand.
type Global struct {
	// ConfigURL selects the default configuration by domain name or by
	// backend URL.
	ConfigURL string

	// UserDir selects the per-user directory of local working copies over
	// the site directory.
	UserDir bool

	// NoCheck disables relational integrity and schema checks.
	NoCheck bool

	NoColor bool
	Verbose bool

	// Version is set by -v, -version or --version anywhere on the command
	// line, and turns the invocation into the version command.
	Version bool

	// Help is set by -h or -help before the subcommand, and turns the
	// invocation into the help command.
	Help bool

	// Args is the subcommand and its arguments.
	Args []string
}

// GlobalFlags returns the global options as a flag set, for help output.
func GlobalFlags() *pflag.FlagSet {
	f, _ := globalFlagSet("")
	return f
}

func globalFlagSet(defaultConfigURL string) (*pflag.FlagSet, *Global) {
	ret := &Global{}
	f := defaultFlagSet("driftconfig")
	f.SetInterspersed(false)
	f.StringVarP(&ret.ConfigURL, "config-url", "u", defaultConfigURL, "Domain name or URL of the configuration to use by default. Overrides DRIFT_CONFIG_URL.")
	f.BoolVar(&ret.UserDir, "user-dir", false, "Use the per-user directory over the site directory for locally stored configurations.")
	f.BoolVar(&ret.NoCheck, "nocheck", false, "Skip all relational integrity and schema checks.")
	f.BoolVar(&ret.NoColor, "no-color", false, "Disable color codes in the command output.")
	f.BoolVar(&ret.Verbose, "verbose", false, "Enable verbose output and debug logging.")
	f.BoolVarP(&ret.Version, "version", "v", false, `An alias for the "version" subcommand.`)
	f.BoolVarP(&ret.Help, "help", "h", false, "Show this help output, or the help for a specified subcommand.")
	return f, ret
}

// ParseGlobal processes the command line up to the subcommand. The
// configuration URL defaults to defaultConfigURL, which is normally the
// value of the DRIFT_CONFIG_URL environment variable.
func ParseGlobal(args []string, defaultConfigURL string) (*Global, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	f, ret := globalFlagSet(defaultConfigURL)

	if err := f.Parse(longFlags(f, args, false)); err != nil {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Failed to parse global options",
			err.Error(),
		))
	}
	ret.Args = f.Args()

	// The version flags are accepted after the subcommand as well.
	for _, arg := range ret.Args {
		if arg == "-v" || arg == "-version" || arg == "--version" {
			ret.Version = true
			break
		}
	}
	switch {
	case ret.Help:
		ret.Args = append([]string{"help"}, ret.Args...)
	case ret.Version && (len(ret.Args) == 0 || ret.Args[0] != "version"):
		ret.Args = append([]string{"version"}, ret.Args...)
	}

	return ret, diags
}
