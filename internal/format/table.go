package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// TableColumn is one column of a TableFormatter.
type TableColumn struct {
	Name  string
	Width int
	// Right aligns the value to the right edge of the column.
	Right     bool
	Extractor func(domain.Notification) string
}

// TableFormatter renders an aligned table. Widths are measured in terminal
// cells, so wide characters in titles stay aligned.
type TableFormatter struct {
	ShowHeaders bool
	HeaderColor string
	columns     []TableColumn
	now         func() time.Time
}

// NewTableFormatter returns a table with the default columns.
func NewTableFormatter() *TableFormatter {
	f := &TableFormatter{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		now:         time.Now,
	}
	f.columns = []TableColumn{
		{Name: "ID", Width: 10, Extractor: func(n domain.Notification) string { return n.ID }},
		{Name: "", Width: 1, Extractor: func(n domain.Notification) string { return ReadMarker(n.Read) }},
		{Name: "AGE", Width: 8, Right: true, Extractor: func(n domain.Notification) string { return Age(f.now(), n.CreatedAt) }},
		{Name: "TYPE", Width: 8, Extractor: func(n domain.Notification) string { return n.Type.String() }},
		{Name: "DEPARTMENT", Width: 16, Extractor: func(n domain.Notification) string { return n.Department.String() }},
		{Name: "PRIORITY", Width: 8, Extractor: func(n domain.Notification) string { return n.Priority.String() }},
		{Name: "TITLE", Width: 44, Extractor: func(n domain.Notification) string { return n.Title }},
	}
	return f
}

// WithColumns appends custom columns.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// WithClock fixes the reference time used for the AGE column.
func (f *TableFormatter) WithClock(now func() time.Time) *TableFormatter {
	f.now = now
	return f
}

// FormatNotifications writes the table. An empty list writes nothing.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if len(notifications) == 0 {
		return nil
	}
	if f.ShowHeaders {
		headers := make([]string, len(f.columns))
		rules := make([]string, len(f.columns))
		for i, col := range f.columns {
			headers[i] = pad(col.Name, col.Width, false)
			rules[i] = strings.Repeat("-", col.Width)
		}
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", f.HeaderColor, strings.Join(headers, "  "), colors.Reset); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer, strings.Join(rules, "  ")); err != nil {
			return err
		}
	}
	for _, n := range notifications {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			cells[i] = pad(col.Extractor(n), col.Width, col.Right)
		}
		if _, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups writes one table per group.
func (f *TableFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// pad truncates s to width cells, marking truncation with "…", then pads it.
func pad(s string, width int, right bool) string {
	s = Truncate(s, width)
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// ReadMarker is "•" for unread and blank for read.
func ReadMarker(read bool) string {
	if read {
		return " "
	}
	return "•"
}

// Age renders the distance from t to now as "now", "5m", "3h" or "2d".
func Age(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	}
}
