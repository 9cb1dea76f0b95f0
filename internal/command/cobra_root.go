package command

import (
	"runtime"

	"github.com/mitchellh/cli"
	"github.com/spf13/cobra"

	"github.com/driftconfig/driftconfig/internal/command/arguments"
	"github.com/driftconfig/driftconfig/version"
)

// commandFactory returns a command that runs with the given Meta.
type commandFactory func(m Meta) cli.Command

// CobraCommands returns the driftconfig command tree. Each command runs on
// a copy of m carrying the context of the invocation, and reports a non-zero
// exit code through an *ExitCodeError.
func CobraCommands(m Meta) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:  "driftconfig",
		Long: "Manage Drift configuration databases: keep local working copies in sync with their origins, and inspect and edit tiers, organizations, products, tenants and deployables.",
		// Flags are parsed by each command from the arguments it is given.
		DisableFlagParsing: true,
		// Errors and exit codes are reported by the caller.
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.AddGroup(commandGroupIdMain.group(), commandGroupIdOther.group())

	// Commands implementing cli.Command print their own help text.
	helps := map[*cobra.Command]func() string{}
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if help, ok := helps[cmd]; ok {
			m.Ui.Output(help())
			return
		}
		m.Ui.Output(commandHelp()(cmd))
	})

	// The global options are parsed before the command tree runs. They are
	// only added here to be listed in the help output.
	rootCmd.Flags().AddFlagSet(arguments.GlobalFlags())

	add := func(parent *cobra.Command, group commandGroupId, name string, factory commandFactory) {
		cmd := &cobra.Command{
			Use:                name,
			Short:              factory(m).Synopsis(),
			DisableFlagParsing: true,
			GroupID:            group.id(),
		}
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			meta := m
			meta.CallerContext = cmd.Context()
			return runCommand(meta.Ui, factory(meta), args)
		}
		helps[cmd] = func() string { return factory(m).Help() }
		parent.AddCommand(cmd)
	}

	add(rootCmd, commandGroupIdMain, "init", func(m Meta) cli.Command { return &InitCommand{Meta: m} })
	add(rootCmd, commandGroupIdMain, "list", func(m Meta) cli.Command { return &ListCommand{Meta: m} })
	add(rootCmd, commandGroupIdMain, "info", func(m Meta) cli.Command { return &InfoCommand{Meta: m} })
	add(rootCmd, commandGroupIdMain, "pull", func(m Meta) cli.Command { return &PullCommand{Meta: m} })
	add(rootCmd, commandGroupIdMain, "diff", func(m Meta) cli.Command { return &DiffCommand{Meta: m} })
	add(rootCmd, commandGroupIdMain, "push", func(m Meta) cli.Command { return &PushCommand{Meta: m} })

	add(rootCmd, commandGroupIdOther, "addtenant", func(m Meta) cli.Command { return &AddTenantCommand{Meta: m} })
	add(rootCmd, commandGroupIdOther, "cache", func(m Meta) cli.Command { return &CacheCommand{Meta: m} })
	add(rootCmd, commandGroupIdOther, "copy", func(m Meta) cli.Command { return &CopyCommand{Meta: m} })
	add(rootCmd, commandGroupIdOther, "create", func(m Meta) cli.Command { return &CreateCommand{Meta: m} })
	add(rootCmd, commandGroupIdOther, "edit", func(m Meta) cli.Command { return &EditCommand{Meta: m} })
	add(rootCmd, commandGroupIdOther, "migrate", func(m Meta) cli.Command { return &MigrateCommand{Meta: m} })
	add(rootCmd, commandGroupIdOther, "version", func(m Meta) cli.Command {
		return &VersionCommand{
			Meta:              m,
			Version:           version.Version,
			VersionPrerelease: version.Prerelease,
			Platform:          runtime.GOOS + "_" + runtime.GOARCH,
		}
	})

	newGroup := func(name, short string) *cobra.Command {
		cmd := &cobra.Command{
			Use:     name,
			Short:   short,
			GroupID: commandGroupIdOther.id(),
		}
		rootCmd.AddCommand(cmd)
		return cmd
	}

	for _, e := range []struct {
		entity entity
		short  string
		add    commandFactory
	}{
		{tierEntity, "Manage tiers", func(m Meta) cli.Command { return &TierAddCommand{Meta: m} }},
		{organizationEntity, "Manage organizations", func(m Meta) cli.Command { return &OrganizationAddCommand{Meta: m} }},
		{productEntity, "Manage products", func(m Meta) cli.Command { return &ProductAddCommand{Meta: m} }},
		{tenantEntity, "Manage tenants", func(m Meta) cli.Command { return &TenantAddCommand{Meta: m} }},
	} {
		group := newGroup(e.entity.noun, e.short)
		add(group, "", "info", func(m Meta) cli.Command { return &EntityInfoCommand{Meta: m, entity: e.entity} })
		add(group, "", "add", e.add)
		add(group, "", "edit", func(m Meta) cli.Command { return &EntityEditCommand{Meta: m, entity: e.entity} })
	}

	deployable := newGroup("deployable", "Manage registration of deployables")
	add(deployable, "", "info", func(m Meta) cli.Command { return &DeployableInfoCommand{Meta: m} })
	add(deployable, "", "register", func(m Meta) cli.Command { return &DeployableRegisterCommand{Meta: m} })

	return rootCmd
}

// runCommand runs c, or prints its help when asked to.
func runCommand(ui cli.Ui, c cli.Command, args []string) error {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "-h" || arg == "-help" || arg == "--help" {
			ui.Output(c.Help())
			return nil
		}
	}

	switch code := c.Run(args); code {
	case OkExitCode:
		return nil
	case cli.RunResultHelp:
		// The command has already pointed at its help text.
		return &ExitCodeError{ExitCode: DefaultErrorExitCode}
	default:
		return &ExitCodeError{ExitCode: code}
	}
}
