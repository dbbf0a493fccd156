package transport

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// ListNotifications issues GET / with the optional query parameters.
func (c *Client) ListNotifications(ctx context.Context, query domain.ListQuery) ([]domain.Notification, error) {
	params := url.Values{}
	if query.Type != "" {
		params.Set("type", query.Type.String())
	}
	if query.UnreadOnly {
		params.Set("unreadOnly", "true")
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	var list notificationList
	if err := c.do(ctx, "list notifications", http.MethodGet, "/", params, nil, &list); err != nil {
		return nil, err
	}
	return []domain.Notification(list), nil
}

// GetUnreadCount issues GET /unread-count.
func (c *Client) GetUnreadCount(ctx context.Context) (int, error) {
	var count unreadCount
	if err := c.do(ctx, "get unread count", http.MethodGet, "/unread-count", nil, nil, &count); err != nil {
		return 0, err
	}
	return int(count), nil
}

// MarkRead issues PATCH /:id/read.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, "mark read", http.MethodPatch, "/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

// MarkAllRead issues PATCH /read-all.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, "mark all read", http.MethodPatch, "/read-all", nil, nil, nil)
}

// DeleteNotification issues DELETE /:id.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, "delete notification", http.MethodDelete, "/"+url.PathEscape(id), nil, nil, nil)
}

// ListByDepartment issues GET /department/:department.
func (c *Client) ListByDepartment(ctx context.Context, department domain.Department) ([]domain.Notification, error) {
	var list notificationList
	path := "/department/" + url.PathEscape(department.String())
	if err := c.do(ctx, "list by department", http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return []domain.Notification(list), nil
}

// CreateNotification issues POST with n as the body and returns the stored
// entry. It is served by the bundled dev backend and is not part of the
// read-side contract the store depends on.
func (c *Client) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	var created wireNotification
	if err := c.do(ctx, "create notification", http.MethodPost, "", nil, n, &created); err != nil {
		return domain.Notification{}, err
	}
	return created.toDomain(), nil
}
