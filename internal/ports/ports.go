// Package ports defines application boundary interfaces used by core services.
package ports

import (
	"context"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// NotificationTransport defines the remote notification operations used by
// the store. Every method returns an explicit error; callers decide whether
// to surface or absorb it.
type NotificationTransport interface {
	ListNotifications(ctx context.Context, query domain.ListQuery) ([]domain.Notification, error)
	GetUnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	ListByDepartment(ctx context.Context, department domain.Department) ([]domain.Notification, error)
}

// CredentialProvider supplies the bearer token attached to outgoing
// requests. An empty token with a nil error means "no credential"; the
// Authorization header is then omitted.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// FallbackGenerator produces notifications when the backend is unreachable.
type FallbackGenerator interface {
	Generate() []domain.Notification
}

// ConfigProvider defines config reads used by command wiring.
type ConfigProvider interface {
	GetConfigBool(key string, defaultValue bool) bool
	GetConfigString(key, defaultValue string) string
}
