// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Notification represents a single notification entity with business logic.
type Notification struct {
	ID         string     `json:"id"`
	Type       Type       `json:"type"`
	Department Department `json:"department"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"createdAt"`
	Priority   Priority   `json:"priority"`
}

// Type is the notification category. The set is open: unknown values are
// carried through untouched, they just don't match any known tab.
type Type string

const (
	TypeHR       Type = "hr"
	TypeFinance  Type = "finance"
	TypeForms    Type = "forms"
	TypeApproval Type = "approval"
	TypeSystem   Type = "system"
)

// KnownTypes lists the built-in notification types in display order.
func KnownTypes() []Type {
	return []Type{TypeHR, TypeFinance, TypeForms, TypeApproval, TypeSystem}
}

// IsKnown reports whether the type is one of the built-in types.
func (t Type) IsKnown() bool {
	switch t {
	case TypeHR, TypeFinance, TypeForms, TypeApproval, TypeSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// Department scopes a notification to an organizational unit,
// independently of its Type.
type Department string

const (
	DepartmentHR              Department = "hr"
	DepartmentFinance         Department = "finance"
	DepartmentIT              Department = "it"
	DepartmentCustomerService Department = "customer_service"
)

// KnownDepartments lists all departments.
func KnownDepartments() []Department {
	return []Department{DepartmentHR, DepartmentFinance, DepartmentIT, DepartmentCustomerService}
}

// IsValid checks if the department is valid.
func (d Department) IsValid() bool {
	switch d {
	case DepartmentHR, DepartmentFinance, DepartmentIT, DepartmentCustomerService:
		return true
	default:
		return false
	}
}

// String returns the string representation of the department.
func (d Department) String() string {
	return string(d)
}

// Priority represents the urgency of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// KnownPriorities lists priorities from lowest to highest.
func KnownPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// rank orders priorities for sorting; unknown values sort lowest.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// MarkRead sets the read flag and reports whether the value changed.
func (n *Notification) MarkRead() bool {
	if n.Read {
		return false
	}
	n.Read = true
	return true
}

// Validate validates the notification and returns an error if invalid.
func (n *Notification) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidNotificationID)
	}

	if n.Type == "" {
		return fmt.Errorf("notification %s: type cannot be empty", n.ID)
	}

	if n.Department != "" && !n.Department.IsValid() {
		return fmt.Errorf("notification %s: invalid department: %s", n.ID, n.Department)
	}

	if n.Priority != "" && !n.Priority.IsValid() {
		return fmt.Errorf("notification %s: invalid priority: %s", n.ID, n.Priority)
	}

	if n.Title == "" {
		return fmt.Errorf("notification %s: title cannot be empty", n.ID)
	}

	if n.CreatedAt.IsZero() {
		return fmt.Errorf("notification %s: createdAt cannot be empty", n.ID)
	}

	return nil
}

// MatchesFilter checks if the notification matches the given filter criteria.
func (n *Notification) MatchesFilter(filter Filter) bool {
	if filter.Type != "" && n.Type != filter.Type {
		return false
	}
	if filter.Department != "" && n.Department != filter.Department {
		return false
	}
	if filter.Priority != "" && n.Priority != filter.Priority {
		return false
	}
	if filter.UnreadOnly && n.Read {
		return false
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Message), q) {
			return false
		}
	}
	return true
}

// CountUnread returns the number of notifications with Read == false.
func CountUnread(notifs []Notification) int {
	count := 0
	for _, n := range notifs {
		if !n.Read {
			count++
		}
	}
	return count
}

// Clone returns a copy of the slice that shares no backing array with notifs.
func Clone(notifs []Notification) []Notification {
	if notifs == nil {
		return nil
	}
	out := make([]Notification, len(notifs))
	copy(out, notifs)
	return out
}

// ParseType parses a string into a Type. Any non-empty value is accepted.
func ParseType(value string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	if t == "" {
		return "", fmt.Errorf("invalid notification type: %q", value)
	}
	return t, nil
}

// ParseDepartment parses a string into a Department.
func ParseDepartment(value string) (Department, error) {
	d := Department(strings.ToLower(strings.TrimSpace(value)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid department: %s", value)
	}
	return d, nil
}

// ParsePriority parses a string into a Priority.
func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return p, nil
}
