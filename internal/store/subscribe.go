package store

import "sync"

type subscriber struct {
	ch   chan Update
	once sync.Once
}

func (sub *subscriber) close() {
	sub.once.Do(func() { close(sub.ch) })
}

// Subscribe returns a channel receiving an Update after each transition and
// a func that unsubscribes. Sends never block: when a subscriber's buffer is
// full its oldest pending update is discarded, so the newest state is always
// delivered. The channel is closed on unsubscribe or Teardown.
func (s *Store) Subscribe(buffer int) (<-chan Update, func()) {
	if buffer < 1 {
		buffer = 1
	}
	sub := &subscriber{ch: make(chan Update, buffer)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.close()
		return sub.ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub

	return sub.ch, func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		sub.close()
	}
}

// publishLocked must be called with s.mu held for writing.
func (s *Store) publishLocked(event EventKind, background bool) {
	if len(s.subs) == 0 {
		return
	}
	u := Update{Event: event, Snapshot: s.snapshotLocked(), Background: background}
	for _, sub := range s.subs {
		select {
		case sub.ch <- u:
			continue
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- u:
		default:
		}
	}
}

func (s *Store) closeSubscribersLocked() {
	for id, sub := range s.subs {
		sub.close()
		delete(s.subs, id)
	}
}
