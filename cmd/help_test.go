package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestHelpTextOrdersKnownCommands(t *testing.T) {
	root := &cobra.Command{Use: "portal-notify"}
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version"},
		&cobra.Command{Use: "list", Short: "List notifications"},
		&cobra.Command{Use: "hidden-extra", Short: "Not listed"},
	)

	text := HelpText(root)

	assert.Contains(t, text, "USAGE:\n    portal-notify [COMMAND] [OPTIONS]")
	listAt := strings.Index(text, "    list")
	versionAt := strings.Index(text, "    version")
	assert.Less(t, listAt, versionAt)
	assert.NotContains(t, text, "hidden-extra")
}
