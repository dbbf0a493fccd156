// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortByField specifies which field to sort notifications by.
type SortByField string

const (
	SortByCreatedAtField  SortByField = "created_at"
	SortByPriorityField   SortByField = "priority"
	SortByTypeField       SortByField = "type"
	SortByTitleField      SortByField = "title"
	SortByReadStatusField SortByField = "read_status"
)

// IsValid checks if the sort by field is valid.
func (s SortByField) IsValid() bool {
	switch s {
	case SortByCreatedAtField, SortByPriorityField, SortByTypeField,
		SortByTitleField, SortByReadStatusField:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort by field.
func (s SortByField) String() string {
	return string(s)
}

// SortOrder specifies the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort order.
func (s SortOrder) String() string {
	return string(s)
}

// SortOptions holds sorting options for notifications.
type SortOptions struct {
	Field SortByField
	Order SortOrder
}

// DefaultSortOptions returns the canonical ordering: most recent first.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByCreatedAtField,
		Order: SortOrderDesc,
	}
}

// SortNotifications sorts notifications based on the given options.
// Returns a new sorted slice without modifying the original. The sort is
// stable, so entries that compare equal keep their relative order.
func SortNotifications(notifs []Notification, opts SortOptions) []Notification {
	if len(notifs) == 0 {
		return notifs
	}

	opts = normalizeSortOptions(opts)

	sorted := make([]Notification, len(notifs))
	copy(sorted, notifs)

	sort.SliceStable(sorted, func(i, j int) bool {
		c := compareByField(sorted[i], sorted[j], opts.Field)
		if opts.Order == SortOrderDesc {
			return c > 0
		}
		return c < 0
	})

	return sorted
}

// normalizeSortOptions normalizes sort options by setting defaults.
func normalizeSortOptions(opts SortOptions) SortOptions {
	if !opts.Field.IsValid() {
		opts.Field = SortByCreatedAtField
	}
	if !opts.Order.IsValid() {
		opts.Order = SortOrderDesc
	}
	return opts
}

// compareByField returns -1, 0 or 1 comparing i to j on field.
func compareByField(i, j Notification, field SortByField) int {
	switch field {
	case SortByPriorityField:
		return compareInts(i.Priority.rank(), j.Priority.rank())
	case SortByTypeField:
		return strings.Compare(i.Type.String(), j.Type.String())
	case SortByTitleField:
		return strings.Compare(strings.ToLower(i.Title), strings.ToLower(j.Title))
	case SortByReadStatusField:
		// unread < read
		return compareInts(boolRank(i.Read), boolRank(j.Read))
	default:
		return i.CreatedAt.Compare(j.CreatedAt)
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SortByCreatedAt sorts notifications by creation time.
func SortByCreatedAt(notifs []Notification, order SortOrder) []Notification {
	return SortNotifications(notifs, SortOptions{Field: SortByCreatedAtField, Order: order})
}

// SortByPriority sorts notifications by priority.
func SortByPriority(notifs []Notification, order SortOrder) []Notification {
	return SortNotifications(notifs, SortOptions{Field: SortByPriorityField, Order: order})
}

// IsSortedByCreatedAtDesc reports whether notifs already satisfy the
// canonical ordering.
func IsSortedByCreatedAtDesc(notifs []Notification) bool {
	for i := 1; i < len(notifs); i++ {
		if notifs[i].CreatedAt.After(notifs[i-1].CreatedAt) {
			return false
		}
	}
	return true
}

// ParseSortByField parses a string into a SortByField.
func ParseSortByField(field string) (SortByField, error) {
	f := SortByField(field)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", field)
	}
	return f, nil
}

// ParseSortOrder parses a string into a SortOrder.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(order)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}

// SortWithUnreadFirst partitions notifications into unread and read groups,
// sorts each group according to opts, and recombines them with unread first.
// Returns a new sorted slice without modifying the original.
func SortWithUnreadFirst(notifs []Notification, opts SortOptions) []Notification {
	if len(notifs) == 0 {
		return notifs
	}

	unread := make([]Notification, 0, len(notifs))
	read := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.Read {
			read = append(read, n)
		} else {
			unread = append(unread, n)
		}
	}

	result := make([]Notification, 0, len(notifs))
	result = append(result, SortNotifications(unread, opts)...)
	result = append(result, SortNotifications(read, opts)...)
	return result
}
