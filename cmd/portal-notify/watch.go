package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/hooks"
	"github.com/cristianoliveira/portal-notify/internal/logging"
	"github.com/cristianoliveira/portal-notify/internal/store"
	"github.com/spf13/cobra"
)

// watchStore is the part of *store.Store Watch drives.
type watchStore interface {
	Initialize(ctx context.Context) error
	Subscribe(buffer int) (<-chan store.Update, func())
	Teardown()
}

// hookRunner runs the scripts registered for a hook point.
type hookRunner interface {
	Run(ctx context.Context, point string, env map[string]string) error
}

// WatchOptions holds the parameters for Watch.
type WatchOptions struct {
	Output io.Writer
	// All prints read notifications too.
	All bool
	// Hooks, when set, runs notification-received scripts for each
	// printed notification.
	Hooks hookRunner
}

func hooksFromConfig() *hooks.Runner {
	return hooks.New(hooks.Options{
		Dir:         config.Get("hooks_dir", ""),
		FailureMode: hooks.FailureMode(config.Get("hooks_failure_mode", string(hooks.FailureWarn))),
		Timeout:     config.GetDuration("hooks_timeout", hooks.DefaultTimeout),
		Logger:      logging.GetGlobal(),
	})
}

// NewWatchCmd creates the watch command with explicit dependencies.
func NewWatchCmd(open storeOpener) *cobra.Command {
	if open == nil {
		panic("NewWatchCmd: store opener cannot be nil")
	}

	var (
		interval time.Duration
		all      bool
	)
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print new notifications as they arrive",
		Long: `Refresh in the background and print notifications as they arrive.

USAGE:
    portal-notify watch [OPTIONS]

OPTIONS:
    --interval <dur>   Refresh period (default: refresh_interval_ms)
    --all              Print read notifications too
    -h, --help         Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(interval)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			colors.Info("Watching notifications (Ctrl+C to stop)...")
			return Watch(ctx, s, WatchOptions{Output: cmd.OutOrStdout(), All: all, Hooks: hooksFromConfig()})
		},
	}
	watchCmd.Flags().DurationVar(&interval, "interval", 0, "Refresh period")
	watchCmd.Flags().BoolVar(&all, "all", false, "Print read notifications too")
	return watchCmd
}

// Watch initializes s and prints each notification the first time a fetch
// returns it. It returns when ctx is done and tears s down.
func Watch(ctx context.Context, s watchStore, opts WatchOptions) error {
	updates, unsubscribe := s.Subscribe(8)
	defer unsubscribe()
	defer s.Teardown()

	if err := s.Initialize(ctx); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	seen := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if u.Event != store.EventFetched {
				continue
			}
			printNew(ctx, opts, u.Snapshot, seen)
		}
	}
}

// printNew prints unseen entries oldest first so output reads in arrival
// order.
func printNew(ctx context.Context, opts WatchOptions, snap store.Snapshot, seen map[string]bool) {
	list := snap.Notifications
	for i := len(list) - 1; i >= 0; i-- {
		n := list[i]
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		if n.Read && !opts.All {
			continue
		}
		printNotification(n, snap.Source == store.SourceFallback, opts.Output)
		if opts.Hooks != nil {
			if err := opts.Hooks.Run(ctx, hooks.PointNotificationReceived, hooks.NotificationEnv(n)); err != nil {
				colors.Warning(err.Error())
			}
		}
	}
}

func colorForPriority(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return colors.Red
	case domain.PriorityMedium:
		return colors.Yellow
	default:
		return ""
	}
}

func printNotification(n domain.Notification, offline bool, w io.Writer) {
	msg := fmt.Sprintf("[%s] [%s/%s] %s", n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Type, n.Priority, n.Title)
	if offline {
		msg += " (offline data)"
	}
	if color := colorForPriority(n.Priority); color != "" {
		fmt.Fprintf(w, "%s%s%s\n", color, msg, colors.Reset)
	} else {
		fmt.Fprintln(w, msg)
	}
	if n.Message != "" {
		fmt.Fprintf(w, "  └─ %s\n", n.Message)
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewWatchCmd(defaultStoreOpener))
}
