// Package domain provides the domain layer for notifications.
// It contains business logic, value objects, and domain services.
package domain

import (
	"errors"
)

var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidNotificationID is returned when the notification ID is invalid.
	ErrInvalidNotificationID = errors.New("invalid notification ID")
)

// ListQuery carries the optional server-side list parameters.
// Zero values mean "not set".
type ListQuery struct {
	Type       Type
	UnreadOnly bool
	Page       int
	Limit      int
}
