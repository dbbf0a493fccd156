package main

import (
	"fmt"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/errors"
	"github.com/spf13/cobra"
)

// NewMarkReadCmd creates the mark-read command with explicit dependencies.
func NewMarkReadCmd(open storeOpener, out errors.ErrorHandler) *cobra.Command {
	if open == nil || out == nil {
		panic("NewMarkReadCmd: dependencies cannot be nil")
	}

	return &cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark a notification as read",
		Long: `Mark a notification as read by ID.

USAGE:
    portal-notify mark-read <id>

A backend failure is reported as a warning; the command still succeeds.

OPTIONS:
    -h, --help           Show this help`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(0)
			if err != nil {
				return err
			}
			defer s.Teardown()

			id := args[0]
			res := s.MarkAsRead(cmd.Context(), id)
			errors.ReportLocalMutation(out, fmt.Sprintf("Notification %s marked as read", id), res.RemoteErr)
			return nil
		},
	}
}

// NewMarkAllReadCmd creates the mark-all-read command with explicit dependencies.
func NewMarkAllReadCmd(open storeOpener, out errors.ErrorHandler) *cobra.Command {
	if open == nil || out == nil {
		panic("NewMarkAllReadCmd: dependencies cannot be nil")
	}

	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		Long: `Mark every notification as read.

USAGE:
    portal-notify mark-all-read

OPTIONS:
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(0)
			if err != nil {
				return err
			}
			defer s.Teardown()

			res := s.MarkAllAsRead(cmd.Context())
			errors.ReportLocalMutation(out, "All notifications marked as read", res.RemoteErr)
			return nil
		},
	}
}

func init() {
	out := errors.NewDefaultCLIHandler()
	cmd.RootCmd.AddCommand(NewMarkReadCmd(defaultStoreOpener, out))
	cmd.RootCmd.AddCommand(NewMarkAllReadCmd(defaultStoreOpener, out))
}
