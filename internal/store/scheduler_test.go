package store

import (
	"context"
	"testing"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeFetchesThenRefreshesPerTick(t *testing.T) {
	ticks := make(chan time.Time)
	ft := &fakeTransport{list: []domain.Notification{notif("n1", domain.TypeHR, "", false, 1)}, count: 1}
	s := newStore(t, ft, Options{TickChan: ticks})
	updates, cancel := s.Subscribe(16)
	defer cancel()

	require.NoError(t, s.Initialize(context.Background()))
	listCalls, _ := ft.calls()
	require.Equal(t, 1, listCalls)

	u := nextUpdate(t, updates)
	assert.Equal(t, EventLoading, u.Event)
	assert.True(t, u.Snapshot.IsLoading)
	u = nextUpdate(t, updates)
	assert.Equal(t, EventFetched, u.Event)
	assert.False(t, u.Background)

	for period := 1; period <= 3; period++ {
		ticks <- baseTime.Add(time.Duration(period) * DefaultInterval)
		u := nextUpdate(t, updates)
		assert.Equal(t, EventFetched, u.Event, "background refresh emits no loading event")
		assert.True(t, u.Background)
		assert.False(t, u.Snapshot.IsLoading)
		listCalls, _ := ft.calls()
		assert.Equal(t, 1+period, listCalls)
	}

	s.Teardown()

	select {
	case ticks <- baseTime.Add(10 * DefaultInterval):
		t.Fatal("refresh loop still receiving ticks after teardown")
	case <-time.After(50 * time.Millisecond):
	}
	listCalls, _ = ft.calls()
	assert.Equal(t, 4, listCalls)

	_, ok := <-updates
	assert.False(t, ok, "teardown closes subscriptions")
}

func TestInitializeTwiceIsNoop(t *testing.T) {
	ticks := make(chan time.Time)
	ft := &fakeTransport{}
	s := newStore(t, ft, Options{TickChan: ticks})

	require.NoError(t, s.Initialize(context.Background()))
	require.NoError(t, s.Initialize(context.Background()))
	listCalls, _ := ft.calls()
	assert.Equal(t, 1, listCalls)
}

func TestInitializeAfterTeardown(t *testing.T) {
	s := newStore(t, &fakeTransport{}, Options{TickChan: make(chan time.Time)})
	s.Teardown()
	s.Teardown()
	assert.ErrorIs(t, s.Initialize(context.Background()), ErrStoreClosed)
}

func TestInitializeWithFailingBackendStillPopulates(t *testing.T) {
	ft := &fakeTransport{listErr: errBackendDown}
	s := newStore(t, ft, Options{TickChan: make(chan time.Time)})

	require.NoError(t, s.Initialize(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, ErrorFetchFailed, snap.LastError)
	assert.NotEmpty(t, snap.Notifications)
}

func TestNoMutationAfterTeardown(t *testing.T) {
	ft := &fakeTransport{list: []domain.Notification{notif("n1", domain.TypeHR, "", false, 1)}, count: 1}
	s := newStore(t, ft, Options{TickChan: make(chan time.Time)})
	require.NoError(t, s.Initialize(context.Background()))
	s.Teardown()

	res := s.MarkAsRead(context.Background(), "n1")
	assert.ErrorIs(t, res.RemoteErr, ErrStoreClosed)
	res = s.MarkAllAsRead(context.Background())
	assert.ErrorIs(t, res.RemoteErr, ErrStoreClosed)
	assert.ErrorIs(t, s.Delete(context.Background(), "n1"), ErrStoreClosed)

	ft.mu.Lock()
	ft.list = nil
	ft.mu.Unlock()
	s.Fetch(context.Background(), true)

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.False(t, snap.Notifications[0].Read)
	assert.Empty(t, ft.markCalls)
	assert.Empty(t, ft.deleteCalls)
}

func TestInFlightRefreshAfterTeardownIsDiscarded(t *testing.T) {
	ticks := make(chan time.Time)
	entered := make(chan struct{})
	ft := &fakeTransport{count: 1}
	ft.listFn = func(ctx context.Context, call int) ([]domain.Notification, error) {
		if call == 1 {
			return []domain.Notification{notif("first", domain.TypeHR, "", false, 1)}, nil
		}
		close(entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	s := newStore(t, ft, Options{TickChan: ticks})
	require.NoError(t, s.Initialize(context.Background()))

	ticks <- baseTime
	<-entered
	s.Teardown()

	list := s.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].ID, "cancelled refresh must not install fallback data")
}

func TestLoopStopsWhenParentContextEnds(t *testing.T) {
	ticks := make(chan time.Time)
	ft := &fakeTransport{}
	s := newStore(t, ft, Options{TickChan: ticks})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Initialize(ctx))
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case ticks <- baseTime:
			return false
		case <-time.After(10 * time.Millisecond):
			return true
		}
	}, time.Second, 20*time.Millisecond)
}

func TestSubscribeKeepsNewestWhenFull(t *testing.T) {
	ft := &fakeTransport{
		list: []domain.Notification{
			notif("a", domain.TypeHR, "", false, 1),
			notif("b", domain.TypeHR, "", false, 2),
		},
		count: 2,
	}
	s := newStore(t, ft, Options{})
	s.Fetch(context.Background(), false)

	updates, cancel := s.Subscribe(1)
	s.MarkAsRead(context.Background(), "a")
	s.MarkAsRead(context.Background(), "b")

	u := nextUpdate(t, updates)
	assert.Equal(t, 0, u.Snapshot.UnreadCount)

	cancel()
	cancel()
	_, ok := <-updates
	assert.False(t, ok)
}

func TestSubscribeAfterTeardownIsClosed(t *testing.T) {
	s := newStore(t, &fakeTransport{}, Options{})
	s.Teardown()
	updates, cancel := s.Subscribe(1)
	defer cancel()
	_, ok := <-updates
	assert.False(t, ok)
}

func TestDeleteEmitsEvent(t *testing.T) {
	ft := &fakeTransport{list: []domain.Notification{notif("a", domain.TypeHR, "", false, 1)}, count: 1}
	s := newStore(t, ft, Options{})
	s.Fetch(context.Background(), false)
	updates, cancel := s.Subscribe(4)
	defer cancel()

	require.NoError(t, s.Delete(context.Background(), "a"))
	u := nextUpdate(t, updates)
	assert.Equal(t, EventDeleted, u.Event)
	assert.Empty(t, u.Snapshot.Notifications)
}
