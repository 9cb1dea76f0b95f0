// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/cli"
	"github.com/mitchellh/colorstring"
	"github.com/spf13/afero"

	backendInit "github.com/driftconfig/driftconfig/internal/backend/init"
	"github.com/driftconfig/driftconfig/internal/command"
	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/internal/command/cliconfig"
	"github.com/driftconfig/driftconfig/internal/command/format"
	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/logging"
	"github.com/driftconfig/driftconfig/internal/terminal"
	"github.com/driftconfig/driftconfig/version"
)

// EnvCLI is the environment variable name to set additional CLI args.
const EnvCLI = "DRIFTCONFIG_CLI_ARGS"

// Ui is the output used before the terminal streams are set up.
var Ui cli.Ui = &cli.BasicUi{
	Reader:      os.Stdin,
	Writer:      os.Stdout,
	ErrorWriter: os.Stderr,
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	defer logging.PanicHandler()

	log.Printf("[INFO] driftconfig version: %s %s", Version, VersionPrerelease)
	if logging.IsDebugOrHigher() {
		for _, depMod := range version.InterestingDependencies() {
			log.Printf("[DEBUG] using %s %s", depMod.Path, depMod.Version)
		}
	}
	log.Printf("[INFO] Go runtime version: %s", runtime.Version())
	log.Printf("[INFO] CLI args: %#v", os.Args)

	streams, err := terminal.Init()
	if err != nil {
		Ui.Error(fmt.Sprintf("Failed to configure the terminal: %s", err))
		return 1
	}
	if streams.Stdout.IsTerminal() {
		log.Printf("[TRACE] Stdout is a terminal of width %d", streams.Stdout.Columns())
	} else {
		log.Printf("[TRACE] Stdout is not a terminal")
	}

	config, diags := cliconfig.LoadConfig()
	if len(diags) > 0 {
		// Color is off until the command line has been read.
		earlyColor := &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: true,
			Reset:   true,
		}
		Ui.Error("There are some problems with the CLI configuration:")
		for _, diag := range diags {
			Ui.Error(format.Diagnostic(diag, earlyColor, 78))
		}
		if diags.HasErrors() {
			Ui.Error("As a result of the above problems, driftconfig may not behave as intended.\n\n")
			// Continue anyway, the configuration has reasonable defaults.
		}
	}

	registry, err := config.PluginRegistry()
	if err != nil {
		Ui.Error(fmt.Sprintf("Invalid plugin declarations in the CLI configuration: %s", err))
		return 1
	}

	backendInit.Init()

	args, err := mergeEnvArgs(EnvCLI, os.Args[1:])
	if err != nil {
		Ui.Error(err.Error())
		return 1
	}

	global, diags := arguments.ParseGlobal(args, os.Getenv(domains.ConfigURLEnvVar))
	if global.Verbose {
		logging.SetLevel(hclog.Debug)
	}
	log.Printf("[INFO] CLI command args: %#v", global.Args)

	view := views.NewView(streams)
	view.Configure(global.NoColor || !streams.Stdout.IsTerminal(), false)
	if diags.HasErrors() {
		view.Diagnostics(diags)
		Ui.Error("To see the global options, run:\n  driftconfig -help")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meta := command.Meta{
		Ui:        command.NewBasicUI(streams, view.Colorize()),
		View:      view,
		Config:    config,
		Plugins:   registry,
		Fs:        afero.NewOsFs(),
		ConfigURL: global.ConfigURL,
		UserDir:   global.UserDir,
		NoCheck:   global.NoCheck,
		Verbose:   global.Verbose,
	}

	rootCmd := command.CobraCommands(meta)
	rootCmd.SetArgs(global.Args)
	exitCode, err := command.ExtractExitCode(rootCmd.ExecuteContext(ctx))
	if err != nil {
		meta.Ui.Error(fmt.Sprintf("Error executing CLI: %s", err))
		if strings.HasPrefix(err.Error(), "unknown command") {
			meta.Ui.Error("To see all of driftconfig's top-level commands, run:\n  driftconfig -help")
		}
	}
	return exitCode
}

// mergeEnvArgs inserts the arguments in the environment variable envName
// after the subcommand, which is the first argument that is not a global
// option.
func mergeEnvArgs(envName string, args []string) ([]string, error) {
	v := os.Getenv(envName)
	if v == "" {
		return args, nil
	}

	log.Printf("[INFO] %s value: %q", envName, v)
	extra, err := shellwords.Parse(v)
	if err != nil {
		return nil, fmt.Errorf(
			"Error parsing extra CLI args from %s: %s",
			envName, err)
	}

	global, _ := arguments.ParseGlobal(args, "")
	if len(global.Args) == 0 || global.Help || global.Version {
		return append(args, extra...), nil
	}

	// global.Args is a suffix of args that starts with the subcommand.
	idx := len(args) - len(global.Args) + 1

	newArgs := make([]string, 0, len(args)+len(extra))
	newArgs = append(newArgs, args[:idx]...)
	newArgs = append(newArgs, extra...)
	newArgs = append(newArgs, args[idx:]...)
	return newArgs, nil
}
