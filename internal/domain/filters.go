// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

// Filter holds filter criteria for notifications.
type Filter struct {
	Type       Type
	Department Department
	Priority   Priority
	UnreadOnly bool
	Query      string // case-insensitive substring over title and message
}

// FilterOptions holds filter parameters similar to CLI options.
type FilterOptions struct {
	Type       string
	Department string
	Priority   string
	UnreadOnly bool
	Query      string
}

// ToFilter converts FilterOptions to a Filter struct.
func (fo FilterOptions) ToFilter() (Filter, error) {
	var filter Filter

	if fo.Type != "" {
		t, err := ParseType(fo.Type)
		if err != nil {
			return Filter{}, err
		}
		filter.Type = t
	}

	if fo.Department != "" {
		d, err := ParseDepartment(fo.Department)
		if err != nil {
			return Filter{}, err
		}
		filter.Department = d
	}

	if fo.Priority != "" {
		p, err := ParsePriority(fo.Priority)
		if err != nil {
			return Filter{}, err
		}
		filter.Priority = p
	}

	filter.UnreadOnly = fo.UnreadOnly
	filter.Query = fo.Query
	return filter, nil
}

// IsEmpty returns true if the filter has no criteria set.
func (f Filter) IsEmpty() bool {
	return f.Type == "" &&
		f.Department == "" &&
		f.Priority == "" &&
		!f.UnreadOnly &&
		f.Query == ""
}

// FilterNotifications filters a slice of notifications based on the given filter.
// Returns a new slice containing only matching notifications, in their original
// relative order.
func FilterNotifications(notifs []Notification, filter Filter) []Notification {
	result := make([]Notification, 0, len(notifs))
	if filter.IsEmpty() {
		return append(result, notifs...)
	}

	for _, n := range notifs {
		if n.MatchesFilter(filter) {
			result = append(result, n)
		}
	}
	return result
}

// FilterByType filters notifications by type.
func FilterByType(notifs []Notification, t Type) []Notification {
	return FilterNotifications(notifs, Filter{Type: t})
}

// FilterByDepartment filters notifications by department.
func FilterByDepartment(notifs []Notification, d Department) []Notification {
	return FilterNotifications(notifs, Filter{Department: d})
}

// FilterByPriority filters notifications by priority.
func FilterByPriority(notifs []Notification, p Priority) []Notification {
	return FilterNotifications(notifs, Filter{Priority: p})
}

// FilterUnread returns only unread notifications.
func FilterUnread(notifs []Notification) []Notification {
	return FilterNotifications(notifs, Filter{UnreadOnly: true})
}

// SearchNotifications filters notifications whose title or message contains
// query, ignoring case.
func SearchNotifications(notifs []Notification, query string) []Notification {
	return FilterNotifications(notifs, Filter{Query: query})
}
