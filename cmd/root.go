// Package cmd holds the root command shared by the portal-notify binary.
package cmd

import (
	"os"

	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/logging"
	"github.com/cristianoliveira/portal-notify/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "portal-notify",
	Short:         "Enterprise portal notifications from the terminal.",
	Long:          `Enterprise portal notifications from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			os.Setenv(config.EnvPrefix+"DEBUG", "true")
		}
		if quietFlag {
			os.Setenv(config.EnvPrefix+"QUIET", "true")
		}
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		if err := logging.InitGlobal(cmd.Name()); err != nil {
			colors.Warning("file logging disabled:", err.Error())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute runs the root command. It is called by main.main.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log errors")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			cmd.Println(cmd.Long)
			return
		}
		printHelpText(cmd)
	})
}
