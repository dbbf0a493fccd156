package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/portal-notify/internal/store"
)

type updateMsg store.Update

type updatesClosedMsg struct{}

type mutationMsg struct {
	success string
	result  store.MutationResult
}

type deleteMsg struct {
	id  string
	err error
}

// waitForUpdate blocks on the subscription and delivers one Update. Update
// re-arms it after every delivery.
func waitForUpdate(updates <-chan store.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return updateMsg(u)
	}
}

// refreshCmd relies on the subscription to deliver the new state.
func refreshCmd(ctx context.Context, s Store) tea.Cmd {
	return func() tea.Msg {
		s.Refresh(ctx)
		return nil
	}
}

func markReadCmd(ctx context.Context, s Store, id string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{success: "Marked as read", result: s.MarkAsRead(ctx, id)}
	}
}

func markAllCmd(ctx context.Context, s Store) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{success: "All notifications marked as read", result: s.MarkAllAsRead(ctx)}
	}
}

func deleteCmd(ctx context.Context, s Store, id string) tea.Cmd {
	return func() tea.Msg {
		return deleteMsg{id: id, err: s.Delete(ctx, id)}
	}
}
