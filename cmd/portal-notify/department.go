package main

import (
	"fmt"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/format"
	"github.com/spf13/cobra"
)

// NewDepartmentCmd creates the department command with explicit dependencies.
func NewDepartmentCmd(open storeOpener) *cobra.Command {
	if open == nil {
		panic("NewDepartmentCmd: store opener cannot be nil")
	}

	var outputFormat string
	departmentCmd := &cobra.Command{
		Use:   "department <dept>",
		Short: "List notifications for one department",
		Long: `List notifications for one department.

USAGE:
    portal-notify department <hr|finance|it|customer_service> [OPTIONS]

When the backend cannot answer, the locally loaded list is filtered instead.

OPTIONS:
    --format <format>    Output format: table (default), simple, compact, json
    -h, --help           Show this help`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDepartment(args[0])
			if err != nil {
				return err
			}
			formatterType, err := format.ParseFormatterType(outputFormat)
			if err != nil {
				return err
			}

			s, err := open(0)
			if err != nil {
				return err
			}
			defer s.Teardown()

			list, fromFallback := s.Department(cmd.Context(), d)
			if fromFallback {
				// The local view needs a loaded list to filter.
				s.Refresh(cmd.Context())
				list = s.FilterByDepartment(d)
			}
			if err := format.NewFormatter(formatterType).FormatNotifications(list, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("department: %w", err)
			}
			if fromFallback {
				colors.Hint("(backend unavailable; filtered local data)")
			}
			return nil
		},
	}
	departmentCmd.Flags().StringVar(&outputFormat, "format", string(format.FormatterTypeTable), "Output format")
	return departmentCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewDepartmentCmd(defaultStoreOpener))
}
