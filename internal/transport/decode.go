package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// wireNotification accepts the shapes seen from portal backends: ids as
// strings or numbers, and a bare "_id" when "id" is absent.
type wireNotification struct {
	ID         flexString `json:"id"`
	MongoID    flexString `json:"_id"`
	Type       string     `json:"type"`
	Department string     `json:"department"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"createdAt"`
	Priority   string     `json:"priority"`
}

func (w wireNotification) toDomain() domain.Notification {
	id := string(w.ID)
	if id == "" {
		id = string(w.MongoID)
	}
	return domain.Notification{
		ID:         id,
		Type:       domain.Type(w.Type),
		Department: domain.Department(w.Department),
		Title:      w.Title,
		Message:    w.Message,
		Read:       w.Read,
		CreatedAt:  w.CreatedAt,
		Priority:   domain.Priority(w.Priority),
	}
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// notificationList decodes either {"notifications": [...]} or a bare array.
type notificationList []domain.Notification

func (l *notificationList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var raw []wireNotification
	switch {
	case len(data) > 0 && data[0] == '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	case len(data) > 0 && data[0] == '{':
		var envelope struct {
			Notifications []wireNotification `json:"notifications"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return err
		}
		raw = envelope.Notifications
	case bytes.Equal(data, []byte("null")):
	default:
		return errors.New("expected a notification array or an object with a notifications field")
	}

	out := make([]domain.Notification, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toDomain())
	}
	*l = out
	return nil
}

// unreadCount decodes {"count": n} or a bare n. Numeric strings are accepted.
type unreadCount int

func (c *unreadCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var envelope struct {
			Count json.RawMessage `json:"count"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return err
		}
		if envelope.Count == nil {
			return errors.New("unread count object has no count field")
		}
		data = envelope.Count
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return fmt.Errorf("unread count must be a number: %s", data)
		}
		n = json.Number(s)
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return fmt.Errorf("unread count must be an integer: %w", err)
	}
	if v < 0 {
		v = 0
	}
	*c = unreadCount(v)
	return nil
}
