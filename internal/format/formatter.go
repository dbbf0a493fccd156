// Package format renders notifications for CLI output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// Formatter writes notifications to a writer.
type Formatter interface {
	FormatNotifications(notifications []domain.Notification, writer io.Writer) error
	FormatGroups(groups domain.GroupResult, writer io.Writer) error
}

// FormatterType selects a Formatter.
type FormatterType string

const (
	// FormatterTypeTable is an aligned table with headers. Default.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeSimple is one line per notification: id, age and title.
	FormatterTypeSimple FormatterType = "simple"
	// FormatterTypeCompact prints titles only.
	FormatterTypeCompact FormatterType = "compact"
	// FormatterTypeJSON prints the notifications as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// ParseFormatterType accepts the names above, case-insensitively.
func ParseFormatterType(s string) (FormatterType, error) {
	t := FormatterType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case FormatterTypeTable, FormatterTypeSimple, FormatterTypeCompact, FormatterTypeJSON:
		return t, nil
	case "":
		return FormatterTypeTable, nil
	default:
		return "", fmt.Errorf("invalid format: %s (expected table, simple, compact or json)", s)
	}
}

// NewFormatter returns the formatter for t, falling back to the table.
func NewFormatter(t FormatterType) Formatter {
	switch t {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}

// formatGroupsWith writes a "=== key (n, m unread) ===" header per group and
// delegates the rows to f.
func formatGroupsWith(f Formatter, groups domain.GroupResult, writer io.Writer) error {
	for _, group := range groups.Groups {
		if _, err := fmt.Fprintf(writer, "=== %s (%d, %d unread) ===\n", group.Key, group.Count, group.UnreadCount); err != nil {
			return err
		}
		if err := f.FormatNotifications(group.Notifications, writer); err != nil {
			return err
		}
	}
	return nil
}
