package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/mockgen"
	"github.com/cristianoliveira/portal-notify/internal/ports"
	"github.com/cristianoliveira/portal-notify/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var errBackendDown = errors.New("backend down")

type fakeTransport struct {
	mu        sync.Mutex
	list      []domain.Notification
	listErr   error
	markErr   error
	deleteErr error
	deptErr   error
	marked    []string
	markedAll int
	deleted   []string
}

var _ ports.NotificationTransport = (*fakeTransport)(nil)

func (f *fakeTransport) ListNotifications(context.Context, domain.ListQuery) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return domain.Clone(f.list), nil
}

func (f *fakeTransport) GetUnreadCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return 0, f.listErr
	}
	return domain.CountUnread(f.list), nil
}

func (f *fakeTransport) MarkRead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, id)
	return f.markErr
}

func (f *fakeTransport) MarkAllRead(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedAll++
	return f.markErr
}

func (f *fakeTransport) DeleteNotification(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTransport) ListByDepartment(_ context.Context, d domain.Department) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deptErr != nil {
		return nil, f.deptErr
	}
	return domain.FilterByDepartment(f.list, d), nil
}

func (f *fakeTransport) setList(list []domain.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = list
}

func openerFor(ft *fakeTransport) storeOpener {
	return func(time.Duration) (*store.Store, error) {
		return store.New(store.Options{Transport: ft, Fallback: mockgen.Noop{}, Interval: time.Hour})
	}
}

func sampleNotifications() []domain.Notification {
	now := time.Now()
	return []domain.Notification{
		{ID: "n1", Title: "Payroll processed", Message: "March payroll is out", Type: domain.TypeFinance, Department: domain.DepartmentFinance, Priority: domain.PriorityHigh, CreatedAt: now.Add(-time.Minute)},
		{ID: "n2", Title: "Leave approved", Message: "Enjoy", Type: domain.TypeHR, Department: domain.DepartmentHR, Priority: domain.PriorityMedium, CreatedAt: now.Add(-time.Hour)},
		{ID: "n3", Title: "Laptop ready", Type: domain.TypeSystem, Department: domain.DepartmentIT, Priority: domain.PriorityLow, Read: true, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "n4", Title: "Benefits form due", Type: domain.TypeForms, Department: domain.DepartmentHR, Priority: domain.PriorityLow, CreatedAt: now.Add(-3 * time.Hour)},
	}
}

// recordingHandler captures ErrorHandler output.
type recordingHandler struct {
	mu       sync.Mutex
	errors   []string
	warnings []string
	infos    []string
	success  []string
}

func (h *recordingHandler) Error(msg string)   { h.mu.Lock(); h.errors = append(h.errors, msg); h.mu.Unlock() }
func (h *recordingHandler) Warning(msg string) { h.mu.Lock(); h.warnings = append(h.warnings, msg); h.mu.Unlock() }
func (h *recordingHandler) Info(msg string)    { h.mu.Lock(); h.infos = append(h.infos, msg); h.mu.Unlock() }
func (h *recordingHandler) Success(msg string) { h.mu.Lock(); h.success = append(h.success, msg); h.mu.Unlock() }

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	c.SetIn(bytes.NewReader(nil))
	c.SetArgs(args)
	c.SilenceUsage = true
	c.SilenceErrors = true
	err := c.Execute()
	return out.String(), err
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func requireContainsEventually(t *testing.T, b *syncBuffer, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(b.String()), []byte(want))
	}, 2*time.Second, 10*time.Millisecond, "output never contained %q; got %q", want, b.String())
}
