package main

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/format"
	"github.com/spf13/cobra"
)

// bellItems is how many entries the bell dropdown shows.
const bellItems = 10

// NewBellCmd creates the bell command with explicit dependencies.
func NewBellCmd(open storeOpener) *cobra.Command {
	if open == nil {
		panic("NewBellCmd: store opener cannot be nil")
	}

	var countOnly bool
	bellCmd := &cobra.Command{
		Use:   "bell",
		Short: "Show the unread badge and latest notifications",
		Long: `Show the unread badge followed by the latest notifications.

USAGE:
    portal-notify bell [OPTIONS]

OPTIONS:
    --count          Print only the badge text (e.g. 7 or 99+), for status bars
    -h, --help       Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(0)
			if err != nil {
				return err
			}
			defer s.Teardown()

			snap := s.Refresh(cmd.Context())
			overflow := config.GetInt("bell_overflow", format.DefaultBadgeOverflow)
			out := cmd.OutOrStdout()

			if countOnly {
				text := format.BadgeText(snap.UnreadCount, overflow)
				if text == "" {
					text = strconv.Itoa(0)
				}
				fmt.Fprintln(out, text)
				return nil
			}

			fmt.Fprintln(out, format.Bell(snap.UnreadCount, overflow))
			latest := snap.Notifications
			if len(latest) > bellItems {
				latest = latest[:bellItems]
			}
			if len(latest) == 0 {
				fmt.Fprintln(out, "No notifications")
			} else if err := format.NewSimpleFormatter().FormatNotifications(latest, out); err != nil {
				return fmt.Errorf("bell: %w", err)
			}
			hintSource(snap)
			return nil
		},
	}
	bellCmd.Flags().BoolVar(&countOnly, "count", false, "Print only the badge text")
	return bellCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewBellCmd(defaultStoreOpener))
}
