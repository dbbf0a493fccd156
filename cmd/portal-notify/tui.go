package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/format"
	"github.com/cristianoliveira/portal-notify/internal/tui"
	"github.com/spf13/cobra"
)

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(open storeOpener) *cobra.Command {
	if open == nil {
		panic("NewTUICmd: store opener cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive notification center",
		Long: `Open the interactive notification center.

USAGE:
    portal-notify tui

KEYS:
    j/k, ↑/↓       Move
    tab/shift+tab  Switch between All, HR, Finance and Forms
    enter          Mark the selected notification as read
    a              Mark all as read
    d              Delete the selected notification
    r              Refresh now
    /              Search, esc to clear
    q              Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(0)
			if err != nil {
				return err
			}
			defer s.Teardown()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			model := tui.NewModel(ctx, s, tui.Options{
				BadgeOverflow: config.GetInt("bell_overflow", format.DefaultBadgeOverflow),
			})
			defer model.Close()

			// The model is subscribed, so the first load shows the spinner.
			go func() { _ = s.Initialize(ctx) }()

			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(defaultStoreOpener))
}
