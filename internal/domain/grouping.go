// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"sort"
)

// GroupByMode specifies how notifications should be grouped.
type GroupByMode string

const (
	GroupByNone       GroupByMode = "none"
	GroupByType       GroupByMode = "type"
	GroupByDepartment GroupByMode = "department"
	GroupByPriority   GroupByMode = "priority"
)

// IsValid checks if the group by mode is valid.
func (g GroupByMode) IsValid() bool {
	switch g {
	case GroupByNone, GroupByType, GroupByDepartment, GroupByPriority:
		return true
	default:
		return false
	}
}

// String returns the string representation of the group by mode.
func (g GroupByMode) String() string {
	return string(g)
}

// Group represents a group of notifications.
type Group struct {
	Key           string
	Count         int
	UnreadCount   int
	Notifications []Notification
}

// GroupResult represents the result of grouping notifications.
type GroupResult struct {
	Mode        GroupByMode
	Groups      []Group
	TotalCount  int
	TotalUnread int
}

// GroupNotifications groups notifications by the specified mode. Within a
// group, notifications keep their input order.
func GroupNotifications(notifs []Notification, mode GroupByMode) GroupResult {
	if !mode.IsValid() {
		mode = GroupByNone
	}

	result := GroupResult{
		Mode:        mode,
		Groups:      []Group{},
		TotalCount:  len(notifs),
		TotalUnread: CountUnread(notifs),
	}
	if mode == GroupByNone || len(notifs) == 0 {
		return result
	}

	groupsMap := make(map[string][]Notification)
	for _, n := range notifs {
		key := groupKey(n, mode)
		groupsMap[key] = append(groupsMap[key], n)
	}

	for key, groupNotifs := range groupsMap {
		result.Groups = append(result.Groups, Group{
			Key:           key,
			Count:         len(groupNotifs),
			UnreadCount:   CountUnread(groupNotifs),
			Notifications: groupNotifs,
		})
	}

	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Key < result.Groups[j].Key
	})

	return result
}

func groupKey(n Notification, mode GroupByMode) string {
	var key string
	switch mode {
	case GroupByType:
		key = n.Type.String()
	case GroupByDepartment:
		key = n.Department.String()
	case GroupByPriority:
		key = n.Priority.String()
	}
	if key == "" {
		return "(empty)"
	}
	return key
}

// CountByType returns the number of notifications for each type present.
func CountByType(notifs []Notification) map[Type]int {
	counts := make(map[Type]int)
	for _, n := range notifs {
		counts[n.Type]++
	}
	return counts
}
