// Package store owns the canonical notification list and its unread count.
//
// A Store fetches from a ports.NotificationTransport, substitutes generated
// data when the backend fails, applies read-state mutations locally before
// informing the backend, and refreshes on a fixed interval until Teardown.
// All presenters in a process share one Store and observe it via Subscribe.
package store

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/logging"
	"github.com/cristianoliveira/portal-notify/internal/mockgen"
	"github.com/cristianoliveira/portal-notify/internal/ports"
)

// DefaultInterval is the background refresh period.
const DefaultInterval = 5 * time.Minute

var (
	// ErrStoreClosed is returned by operations attempted after Teardown.
	ErrStoreClosed = errors.New("notification store is closed")
	// ErrNoTransport is returned by New when Options.Transport is nil.
	ErrNoTransport = errors.New("notification store requires a transport")
)

// ErrorKind records why the current data is not from the backend.
type ErrorKind string

const (
	ErrorNone        ErrorKind = ""
	ErrorFetchFailed ErrorKind = "fetch_failed"
)

// Source tells where the current list came from.
type Source string

const (
	SourceNone     Source = "none"
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// Snapshot is a consistent copy of the store state. The list and the unread
// count always come from the same transition.
type Snapshot struct {
	Notifications []domain.Notification
	UnreadCount   int
	// ServerUnreadCount is the count reported by the backend on the last
	// successful fetch, or -1 when unknown.
	ServerUnreadCount int
	IsLoading         bool
	LastError         ErrorKind
	Source            Source
	LastFetch         time.Time
}

// EventKind names the transition that produced an Update.
type EventKind string

const (
	EventLoading EventKind = "loading"
	EventFetched EventKind = "fetched"
	EventMutated EventKind = "mutated"
	EventDeleted EventKind = "deleted"
)

// Update is delivered to subscribers after every state transition.
type Update struct {
	Event    EventKind
	Snapshot Snapshot
	// Background is set for fetches issued by the refresh loop.
	Background bool
}

// Options configures a Store.
type Options struct {
	Transport ports.NotificationTransport
	// Fallback supplies data when a fetch fails. Nil means mockgen.Noop.
	Fallback ports.FallbackGenerator
	// Interval between background refreshes. Zero means DefaultInterval.
	Interval time.Duration
	// TickChan replaces the interval ticker, for tests.
	TickChan <-chan time.Time
	Logger   logging.Logger
	Clock    func() time.Time
}

// Store is safe for concurrent use.
type Store struct {
	transport ports.NotificationTransport
	fallback  ports.FallbackGenerator
	interval  time.Duration
	tickChan  <-chan time.Time
	log       logging.Logger
	now       func() time.Time

	issued atomic.Uint64

	mu            sync.RWMutex
	notifications []domain.Notification
	serverUnread  int
	loading       int
	lastErr       ErrorKind
	source        Source
	lastFetch     time.Time
	applied       uint64
	subs          map[int]*subscriber
	nextSub       int
	initialized   bool
	closed        bool
	stop          func()
	wg            sync.WaitGroup
}

// New creates an empty Store. Call Initialize to start fetching.
func New(opts Options) (*Store, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}
	s := &Store{
		transport:     opts.Transport,
		fallback:      opts.Fallback,
		interval:      opts.Interval,
		tickChan:      opts.TickChan,
		log:           opts.Logger,
		now:           opts.Clock,
		notifications: []domain.Notification{},
		serverUnread:  -1,
		source:        SourceNone,
		subs:          make(map[int]*subscriber),
	}
	if s.fallback == nil {
		s.fallback = mockgen.Noop{}
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	s.log = s.log.With("component", "store")
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Notifications:     domain.Clone(s.notifications),
		UnreadCount:       domain.CountUnread(s.notifications),
		ServerUnreadCount: s.serverUnread,
		IsLoading:         s.loading > 0,
		LastError:         s.lastErr,
		Source:            s.source,
		LastFetch:         s.lastFetch,
	}
}

// Notifications returns a copy of the canonical list, newest first.
func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Clone(s.notifications)
}

// UnreadCount is always the number of unread entries in the list.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CountUnread(s.notifications)
}

// IsLoading reports whether a foreground fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// LastError returns ErrorFetchFailed while fallback data is shown.
func (s *Store) LastError() ErrorKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// FilterByType returns the entries of type t in canonical order.
func (s *Store) FilterByType(t domain.Type) []domain.Notification {
	return s.Filter(domain.Filter{Type: t})
}

// FilterByDepartment returns the entries of department d in canonical order.
func (s *Store) FilterByDepartment(d domain.Department) []domain.Notification {
	return s.Filter(domain.Filter{Department: d})
}

// Filter applies f to the current list.
func (s *Store) Filter(f domain.Filter) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterNotifications(s.notifications, f)
}
