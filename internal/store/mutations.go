package store

import (
	"context"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// MutationResult describes a read-state mutation. RemoteErr carries the
// backend failure, if any; local state is kept either way.
type MutationResult struct {
	Found     bool
	Changed   bool
	RemoteErr error
}

// MarkAsRead marks id as read locally, then tells the backend. An unknown id
// leaves the list untouched. A backend failure is logged and reported in
// the result but never rolls the local change back. After Teardown nothing
// is changed or sent and RemoteErr is ErrStoreClosed.
func (s *Store) MarkAsRead(ctx context.Context, id string) MutationResult {
	var res MutationResult

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		res.RemoteErr = ErrStoreClosed
		return res
	}
	for i := range s.notifications {
		if s.notifications[i].ID != id {
			continue
		}
		res.Found = true
		res.Changed = s.notifications[i].MarkRead()
		break
	}
	if res.Changed {
		s.publishLocked(EventMutated, false)
	}
	s.mu.Unlock()

	if err := s.transport.MarkRead(ctx, id); err != nil {
		s.log.Warn("mark read not acknowledged by backend", "id", id, "error", err)
		res.RemoteErr = err
	}
	return res
}

// MarkAllAsRead marks every entry read locally, then tells the backend.
// Afterwards UnreadCount is 0 regardless of the backend outcome.
func (s *Store) MarkAllAsRead(ctx context.Context) MutationResult {
	res := MutationResult{Found: true}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return MutationResult{RemoteErr: ErrStoreClosed}
	}
	for i := range s.notifications {
		if s.notifications[i].MarkRead() {
			res.Changed = true
		}
	}
	if res.Changed {
		s.publishLocked(EventMutated, false)
	}
	s.mu.Unlock()

	if err := s.transport.MarkAllRead(ctx); err != nil {
		s.log.Warn("mark all read not acknowledged by backend", "error", err)
		res.RemoteErr = err
	}
	return res
}

// Delete asks the backend to delete id and removes it locally only on
// success. Unlike the read mutations, the backend error is returned.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrStoreClosed
	}

	if err := s.transport.DeleteNotification(ctx, id); err != nil {
		s.log.Warn("delete failed", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			next := make([]domain.Notification, 0, len(s.notifications)-1)
			next = append(next, s.notifications[:i]...)
			next = append(next, s.notifications[i+1:]...)
			s.notifications = next
			s.publishLocked(EventDeleted, false)
			break
		}
	}
	return nil
}

// Department asks the backend for one department's notifications. When the
// backend fails, the local list is filtered instead and fromFallback is true.
func (s *Store) Department(ctx context.Context, d domain.Department) (list []domain.Notification, fromFallback bool) {
	remote, err := s.transport.ListByDepartment(ctx, d)
	if err != nil {
		s.log.Warn("department query failed, filtering local list", "department", d.String(), "error", err)
		return s.FilterByDepartment(d), true
	}
	return normalize(remote, s.log.Warn), false
}
