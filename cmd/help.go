package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/portal-notify/internal/version"
	"github.com/spf13/cobra"
)

// commandOrder is the order commands appear in the root help.
var commandOrder = []string{
	"list",
	"bell",
	"mark-read",
	"mark-all-read",
	"delete",
	"department",
	"watch",
	"tui",
	"serve",
	"token",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	fmt.Fprint(cmd.OutOrStdout(), HelpText(cmd))
}

// HelpText renders the root help listing subcommands in commandOrder.
func HelpText(cmd *cobra.Command) string {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-20s %s", found.Use, found.Short))
	}

	return fmt.Sprintf(`portal-notify v%s

Enterprise portal notifications from the terminal.

USAGE:
    portal-notify [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Enable debug output
    -q, --quiet     Only log errors
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}
