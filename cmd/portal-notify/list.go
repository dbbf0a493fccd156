package main

import (
	"fmt"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/format"
	"github.com/cristianoliveira/portal-notify/internal/search"
	"github.com/spf13/cobra"
)

const listCommandLong = `List notifications with filters and formats.

USAGE:
    portal-notify list [OPTIONS]

OPTIONS:
    --type <type>          Filter by type: hr, finance, forms, approval, system
    --department <dept>    Filter by department: hr, finance, it, customer_service
    --priority <level>     Filter by priority: low, medium, high
    --unread               Show only unread notifications
    --search <text>        Case-insensitive search over title and message
    --search-mode <mode>   How --search matches: substring (default), regex, token
    --limit <n>            Show at most n notifications (default: list_limit)
    --group-by <field>     Group by type, department or priority
    --sort <field>         Sort by created_at (default), priority, type, title, read_status
    --format <format>      Output format: table (default), simple, compact, json
    -h, --help             Show this help

ORDERING:
    Newest first unless --sort is given.`

type listOptions struct {
	filter     domain.FilterOptions
	searchMode string
	limit      int
	groupBy string
	sortBy  string
	format  string
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(open storeOpener) *cobra.Command {
	if open == nil {
		panic("NewListCmd: store opener cannot be nil")
	}

	var opts listOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications with filters and formats",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				opts.limit = config.GetInt("list_limit", 50)
			}
			return runList(cmd, open, opts)
		},
	}

	f := listCmd.Flags()
	f.StringVar(&opts.filter.Type, "type", "", "Filter by type")
	f.StringVar(&opts.filter.Department, "department", "", "Filter by department")
	f.StringVar(&opts.filter.Priority, "priority", "", "Filter by priority")
	f.BoolVar(&opts.filter.UnreadOnly, "unread", false, "Show only unread notifications")
	f.StringVar(&opts.filter.Query, "search", "", "Search title and message")
	f.StringVar(&opts.searchMode, "search-mode", search.ModeSubstring, "Search mode: substring, regex, token")
	f.IntVar(&opts.limit, "limit", 50, "Show at most n notifications")
	f.StringVar(&opts.groupBy, "group-by", "", "Group by type, department or priority")
	f.StringVar(&opts.sortBy, "sort", "", "Sort field")
	f.StringVar(&opts.format, "format", string(format.FormatterTypeTable), "Output format: table, simple, compact, json")

	return listCmd
}

func runList(cmd *cobra.Command, open storeOpener, opts listOptions) error {
	query := opts.filter.Query
	opts.filter.Query = ""
	filter, err := opts.filter.ToFilter()
	if err != nil {
		return err
	}
	provider, err := search.New(opts.searchMode)
	if err != nil {
		return err
	}
	if rp, ok := provider.(*search.RegexProvider); ok && query != "" {
		if _, err := rp.Compile(query); err != nil {
			return fmt.Errorf("invalid search pattern: %w", err)
		}
	}
	formatterType, err := format.ParseFormatterType(opts.format)
	if err != nil {
		return err
	}
	groupBy := domain.GroupByNone
	if opts.groupBy != "" {
		groupBy = domain.GroupByMode(opts.groupBy)
		if !groupBy.IsValid() {
			return fmt.Errorf("invalid group-by field: %s (must be type, department, priority)", opts.groupBy)
		}
	}
	sortOpts := domain.DefaultSortOptions()
	if opts.sortBy != "" {
		if sortOpts.Field, err = domain.ParseSortByField(opts.sortBy); err != nil {
			return err
		}
	}

	s, err := open(0)
	if err != nil {
		return err
	}
	defer s.Teardown()

	snap := s.Refresh(cmd.Context())
	list := domain.FilterNotifications(snap.Notifications, filter)
	list = search.Filter(list, provider, query)
	list = domain.SortNotifications(list, sortOpts)
	if opts.limit > 0 && len(list) > opts.limit {
		list = list[:opts.limit]
	}

	formatter := format.NewFormatter(formatterType)
	out := cmd.OutOrStdout()
	if groupBy != domain.GroupByNone {
		err = formatter.FormatGroups(domain.GroupNotifications(list, groupBy), out)
	} else {
		err = formatter.FormatNotifications(list, out)
	}
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	hintSource(snap)
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(NewListCmd(defaultStoreOpener))
}
