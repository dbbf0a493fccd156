package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// SimpleFormatter prints "id  age  [type] title" per line.
type SimpleFormatter struct {
	now func() time.Time
}

// NewSimpleFormatter creates a SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{now: time.Now}
}

// FormatNotifications implements Formatter.
func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	now := f.now()
	for _, n := range notifications {
		_, err := fmt.Fprintf(writer, "%s %-10s %4s  [%s] %s\n",
			ReadMarker(n.Read), n.ID, Age(now, n.CreatedAt), n.Type, Truncate(n.Title, 60))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups implements Formatter.
func (f *SimpleFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// CompactFormatter prints titles only.
type CompactFormatter struct{}

// NewCompactFormatter creates a CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatNotifications implements Formatter.
func (f *CompactFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		if _, err := fmt.Fprintln(writer, n.Title); err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups implements Formatter.
func (f *CompactFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// JSONFormatter prints indented JSON using the wire field names.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatNotifications writes a JSON array; an empty list is "[]".
func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return writeJSON(writer, notifications)
}

type jsonGroup struct {
	Key           string                `json:"key"`
	Count         int                   `json:"count"`
	UnreadCount   int                   `json:"unreadCount"`
	Notifications []domain.Notification `json:"notifications"`
}

// FormatGroups writes {"mode", "groups", "total", "unread"}.
func (f *JSONFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	out := struct {
		Mode   string      `json:"mode"`
		Groups []jsonGroup `json:"groups"`
		Total  int         `json:"total"`
		Unread int         `json:"unread"`
	}{
		Mode:   groups.Mode.String(),
		Groups: make([]jsonGroup, 0, len(groups.Groups)),
		Total:  groups.TotalCount,
		Unread: groups.TotalUnread,
	}
	for _, g := range groups.Groups {
		out.Groups = append(out.Groups, jsonGroup{Key: g.Key, Count: g.Count, UnreadCount: g.UnreadCount, Notifications: g.Notifications})
	}
	return writeJSON(writer, out)
}

func writeJSON(writer io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling json: %w", err)
	}
	_, err = fmt.Fprintln(writer, string(data))
	return err
}
