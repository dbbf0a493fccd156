package store

import (
	"context"

	"github.com/cristianoliveira/portal-notify/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Refresh is a foreground fetch, for user-triggered reloads.
func (s *Store) Refresh(ctx context.Context) Snapshot {
	return s.Fetch(ctx, true)
}

// Fetch loads the list and the unread count concurrently and replaces the
// canonical state in one transition. If either call fails, the fallback
// generator's output is stored instead and LastError becomes
// ErrorFetchFailed. Fetch never returns an error.
//
// showLoading marks the store as loading for the duration of the call.
// When fetches overlap, the most recently issued one wins: a result that
// arrives after a newer fetch has been applied is dropped. A fetch whose
// ctx is cancelled leaves the state untouched.
func (s *Store) Fetch(ctx context.Context, showLoading bool) Snapshot {
	seq := s.issued.Add(1)

	if showLoading {
		s.mu.Lock()
		if s.closed {
			defer s.mu.Unlock()
			return s.snapshotLocked()
		}
		s.loading++
		s.publishLocked(EventLoading, false)
		s.mu.Unlock()
	}

	list, serverCount, err := s.load(ctx)
	if err != nil && ctx.Err() != nil {
		s.log.Debug("fetch cancelled", "seq", seq, "error", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		if showLoading {
			s.loading--
			if !s.closed {
				s.publishLocked(EventLoading, false)
			}
		}
		return s.snapshotLocked()
	}
	if err != nil {
		s.log.Warn("fetch failed, using fallback data", "seq", seq, "error", err)
		list = s.fallback.Generate()
	}
	list = normalize(list, s.log.Warn)

	s.mu.Lock()
	defer s.mu.Unlock()
	if showLoading {
		s.loading--
	}
	if s.closed {
		return s.snapshotLocked()
	}
	if seq < s.applied {
		s.log.Debug("dropping stale fetch result", "seq", seq, "applied", s.applied)
		if showLoading {
			s.publishLocked(EventLoading, false)
		}
		return s.snapshotLocked()
	}
	s.applied = seq

	s.notifications = list
	s.lastFetch = s.now()
	if err != nil {
		s.serverUnread = -1
		s.lastErr = ErrorFetchFailed
		s.source = SourceFallback
	} else {
		s.serverUnread = serverCount
		s.lastErr = ErrorNone
		s.source = SourceBackend
		if local := domain.CountUnread(list); local != serverCount {
			s.log.Warn("server unread count disagrees with list", "server", serverCount, "list", local)
		}
	}
	s.log.Debug("fetch applied", "seq", seq, "count", len(list), "source", string(s.source), "background", !showLoading)
	s.publishLocked(EventFetched, !showLoading)
	return s.snapshotLocked()
}

// load joins the two backend calls. The first failure cancels the other.
func (s *Store) load(ctx context.Context) ([]domain.Notification, int, error) {
	var (
		list  []domain.Notification
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.transport.ListNotifications(gctx, domain.ListQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.transport.GetUnreadCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return list, count, nil
}

// normalize orders list newest first and keeps the first occurrence of each
// id. The result never aliases list.
func normalize(list []domain.Notification, warn func(string, ...any)) []domain.Notification {
	if !domain.IsSortedByCreatedAtDesc(list) {
		list = domain.SortByCreatedAt(list, domain.SortOrderDesc)
	}
	out := make([]domain.Notification, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, n := range list {
		if seen[n.ID] {
			warn("dropping duplicate notification id", "id", n.ID)
			continue
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out
}
