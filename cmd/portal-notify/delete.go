package main

import (
	"fmt"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/errors"
	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(open storeOpener, out errors.ErrorHandler) *cobra.Command {
	if open == nil || out == nil {
		panic("NewDeleteCmd: dependencies cannot be nil")
	}

	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Long: `Delete a notification by ID.

USAGE:
    portal-notify delete <id>

Unlike mark-read, a backend failure makes the command fail.

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
			if err := s.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete %s: %s", id, errors.Describe(err))
			}
			out.Success(fmt.Sprintf("Notification %s deleted", id))
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewDeleteCmd(defaultStoreOpener, errors.NewDefaultCLIHandler()))
}
