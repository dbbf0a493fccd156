package store

import (
	"context"
	"time"
)

// Initialize performs one foreground fetch and then refreshes in the
// background every interval until Teardown or until ctx is done. A second
// call is a no-op. After Teardown it returns ErrStoreClosed.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	loopCtx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	s.mu.Unlock()

	s.Fetch(loopCtx, true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	tick, stopTicker := s.ticker()
	s.wg.Add(1)
	go s.refreshLoop(loopCtx, tick, stopTicker)
	return nil
}

func (s *Store) ticker() (<-chan time.Time, func()) {
	if s.tickChan != nil {
		return s.tickChan, func() {}
	}
	t := time.NewTicker(s.interval)
	return t.C, t.Stop
}

func (s *Store) refreshLoop(ctx context.Context, tick <-chan time.Time, stopTicker func()) {
	defer s.wg.Done()
	defer stopTicker()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			// A tick and cancellation may be ready together.
			if ctx.Err() != nil {
				return
			}
			s.Fetch(ctx, false)
		}
	}
}

// Teardown stops the refresh loop, waits for it to exit, and closes all
// subscriber channels. No state changes after Teardown returns. It is safe
// to call more than once.
func (s *Store) Teardown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stop := s.stop
	s.closeSubscribersLocked()
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	s.wg.Wait()
	s.log.Debug("store torn down")
}
