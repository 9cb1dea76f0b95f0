package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultMaxRowLen = 78

type commandGroupId string

const (
	commandGroupIdMain  commandGroupId = "main"
	commandGroupIdOther commandGroupId = "other"
)

func (g commandGroupId) id() string {
	return string(g)
}

func (g commandGroupId) group() *cobra.Group {
	switch g {
	case commandGroupIdMain:
		return &cobra.Group{ID: g.id(), Title: "Main commands:"}
	default:
		return &cobra.Group{ID: g.id(), Title: "All other commands:"}
	}
}

// mainCommandsOrder is the order of the main commands in the help output,
// following the usual workflow.
var mainCommandsOrder = []string{"init", "list", "info", "pull", "diff", "push"}

func commandHelp() func(command *cobra.Command) string {
	return func(cmd *cobra.Command) string {
		newLines := func(in string, newLines int) string {
			return fmt.Sprintf("%s%s", strings.Repeat("\n", newLines), in)
		}
		// Determine the longest key to have that length as a reference for alignment
		var maxKeyLen int
		for _, cmd := range cmd.Commands() {
			if cmdLen := len(cmd.Name()); cmdLen > maxKeyLen {
				maxKeyLen = cmdLen
			}
		}
		cmd.Root().Flags().VisitAll(func(flag *pflag.Flag) {
			if flagNameLen := len(flagKey(flag)); flagNameLen > maxKeyLen {
				maxKeyLen = flagNameLen
			}
		})
		// Group commands in main and other
		grouped := groupCommands(cmd.Commands())
		mainCommands := listCommandsForHelp(grouped[commandGroupIdMain], func(a, b *cobra.Command) int {
			aIdx := slices.Index(mainCommandsOrder, a.Name())
			bIdx := slices.Index(mainCommandsOrder, b.Name())
			return aIdx - bIdx
		}, maxKeyLen)
		otherCommands := listCommandsForHelp(grouped[commandGroupIdOther], func(a, b *cobra.Command) int {
			return strings.Compare(a.Name(), b.Name())
		}, maxKeyLen)
		subCommands := listCommandsForHelp(grouped[""], func(a, b *cobra.Command) int {
			return strings.Compare(a.Name(), b.Name())
		}, maxKeyLen)
		// Generate string representation for sub commands
		var mainCommandsStr, otherCommandsStr, subCommandsStr string
		if len(mainCommands) > 0 {
			mainCommandsStr = fmt.Sprintf("Main commands:\n%s", strings.Join(mainCommands, "\n"))
			mainCommandsStr = newLines(mainCommandsStr, 2)
		}
		if len(otherCommands) > 0 {
			otherCommandsStr = fmt.Sprintf("All other commands:\n%s", strings.Join(otherCommands, "\n"))
			otherCommandsStr = newLines(otherCommandsStr, 2)
		}
		if len(subCommands) > 0 {
			subCommandsStr = fmt.Sprintf("Subcommands:\n%s", strings.Join(subCommands, "\n"))
			subCommandsStr = newLines(subCommandsStr, 2)
		}

		// Format the global flags
		globalFlags := formatFlags(cmd.Root().Flags(), maxKeyLen)
		var globalFlagsStr string
		if len(globalFlags) > 0 {
			globalFlagsStr = fmt.Sprintf("Global options (use these before the subcommand, if any):\n%s", strings.Join(globalFlags, "\n"))
			globalFlagsStr = newLines(globalFlagsStr, 2)
		}
		var long string
		if cmd.Long != "" {
			long = newLines(wrap(0, defaultMaxRowLen, cmd.Long), 2)
		}
		helpText := fmt.Sprintf(
			`Usage: %s%s%s%s%s%s`,
			usageLine(cmd),
			long,
			mainCommandsStr,
			otherCommandsStr,
			subCommandsStr,
			globalFlagsStr,
		)
		return helpText
	}
}

// usageLine returns the synopsis of cmd, with the global options placed
// where they are accepted.
func usageLine(cmd *cobra.Command) string {
	if !cmd.HasParent() {
		return fmt.Sprintf("%s [global options] <subcommand> [args]", cmd.Name())
	}
	path := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	return fmt.Sprintf("%s [global options] %s <subcommand> [args]", cmd.Root().Name(), path)
}

func groupCommands(cmds []*cobra.Command) map[commandGroupId][]*cobra.Command {
	ret := map[commandGroupId][]*cobra.Command{}
	for _, cmd := range cmds {
		if cmd.Hidden || !cmd.IsAvailableCommand() {
			continue
		}
		id := commandGroupId(cmd.GroupID)
		ret[id] = append(ret[id], cmd)
	}
	return ret
}

func listCommandsForHelp(cmds []*cobra.Command, cmp func(a, b *cobra.Command) int, maxKeyLen int) []string {
	cmds = slices.Clone(cmds)
	slices.SortStableFunc(cmds, cmp)
	var ret []string
	for _, cmd := range cmds {
		key := fmt.Sprintf("  %s%s  ", cmd.Name(), strings.Repeat(" ", maxKeyLen-len(cmd.Name())))
		ret = append(ret, fmt.Sprintf("%s%s", key, wrap(len(key), defaultMaxRowLen, cmd.Short)))
	}
	return ret
}

func flagKey(flag *pflag.Flag) string {
	if flag.Shorthand != "" {
		return fmt.Sprintf("-%s, -%s", flag.Name, flag.Shorthand)
	}
	return fmt.Sprintf("-%s", flag.Name)
}

func formatFlags(flags *pflag.FlagSet, maxKeyLen int) []string {
	var globalFlags []string
	flags.VisitAll(func(flag *pflag.Flag) {
		key := flagKey(flag)
		key = fmt.Sprintf("  %s%s  ", key, strings.Repeat(" ", maxKeyLen-len(key)))
		globalFlags = append(globalFlags, fmt.Sprintf("%s%s", key, wrap(len(key), defaultMaxRowLen, flag.Usage)))
	})
	return globalFlags
}

// NOTE: copy pasted from pflag as it is
// Splits the string `s` on whitespace into an initial substring up to
// `i` runes in length and the remainder. Will go `slop` over `i` if
// that encompasses the entire string (which allows the caller to
// avoid short orphan words on the final line).
func wrapN(i, slop int, s string) (string, string) {
	if i+slop > len(s) {
		return s, ""
	}

	w := strings.LastIndexAny(s[:i], " \t\n")
	if w <= 0 {
		return s, ""
	}
	nlPos := strings.LastIndex(s[:i], "\n")
	if nlPos > 0 && nlPos < w {
		return s[:nlPos], s[nlPos+1:]
	}
	return s[:w], s[w+1:]
}

// Wraps the string `s` to a maximum width `w` with leading indent
// `i`. The first line is not indented (this is assumed to be done by
// caller). Pass `w` == 0 to do no wrapping
func wrap(i, w int, s string) string {
	if w == 0 {
		return strings.Replace(s, "\n", "\n"+strings.Repeat(" ", i), -1)
	}

	// space between indent i and end of line width w into which
	// we should wrap the text.
	wrap := w - i

	var r, l string

	// Not enough space for sensible wrapping. Wrap as a block on
	// the next line instead.
	if wrap < 24 {
		i = 16
		wrap = w - i
		r += "\n" + strings.Repeat(" ", i)
	}
	// If still not enough space then don't even try to wrap.
	if wrap < 24 {
		return strings.Replace(s, "\n", r, -1)
	}

	// Try to avoid short orphan words on the final line, by
	// allowing wrapN to go a bit over if that would fit in the
	// remainder of the line.
	slop := 5
	wrap = wrap - slop

	// Handle first line, which is indented by the caller (or the
	// special case above)
	l, s = wrapN(wrap, slop, s)
	r = r + strings.Replace(l, "\n", "\n"+strings.Repeat(" ", i), -1)

	// Now wrap the rest
	for s != "" {
		var t string

		t, s = wrapN(wrap, slop, s)
		r = r + "\n" + strings.Repeat(" ", i) + strings.Replace(t, "\n", "\n"+strings.Repeat(" ", i), -1)
	}

	return r
}
