package devserver

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenRepository(filepath.Join(t.TempDir(), "notifications.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func fixtures() []domain.Notification {
	return []domain.Notification{
		{ID: "a", Type: domain.TypeHR, Department: domain.DepartmentHR, Title: "Leave approved", Priority: domain.PriorityLow, CreatedAt: baseTime.Add(3 * time.Hour)},
		{ID: "b", Type: domain.TypeFinance, Department: domain.DepartmentFinance, Title: "Invoice paid", Priority: domain.PriorityHigh, Read: true, CreatedAt: baseTime.Add(2 * time.Hour)},
		{ID: "c", Type: domain.TypeHR, Department: domain.DepartmentIT, Title: "Laptop ready", Priority: domain.PriorityMedium, CreatedAt: baseTime.Add(time.Hour)},
		{ID: "d", Type: domain.TypeForms, Department: domain.DepartmentHR, Title: "Form submitted", Priority: domain.PriorityMedium, CreatedAt: baseTime},
	}
}

func seeded(t *testing.T) *Repository {
	t.Helper()
	repo := newTestRepository(t)
	n, err := repo.Seed(context.Background(), fixtures())
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return repo
}

func ids(list []domain.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	repo := seeded(t)

	n, err := repo.Seed(context.Background(), fixtures())
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.db")
	repo, err := OpenRepository(path)
	require.NoError(t, err)
	_, err = repo.Seed(context.Background(), fixtures())
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = OpenRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestListOrderingFiltersAndPaging(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	list, err := repo.List(ctx, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(list))
	assert.Equal(t, baseTime.Add(3*time.Hour), list[0].CreatedAt)
	assert.True(t, list[1].Read)

	list, err = repo.List(ctx, domain.ListQuery{Type: domain.TypeHR})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(list))

	list, err = repo.List(ctx, domain.ListQuery{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, ids(list))

	list, err = repo.List(ctx, domain.ListQuery{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, ids(list))

	list, err = repo.List(ctx, domain.ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(list))
}

func TestListByDepartment(t *testing.T) {
	repo := seeded(t)

	list, err := repo.ListByDepartment(context.Background(), domain.DepartmentHR)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, ids(list))
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	n, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, repo.MarkRead(ctx, "a"))
	require.NoError(t, repo.MarkRead(ctx, "a"))
	n, err = repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	err = repo.MarkRead(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	changed, err := repo.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	n, err = repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDelete(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "b"))
	_, err := repo.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "b"), domain.ErrNotificationNotFound)
}

func TestCreateAssignsIDAndTime(t *testing.T) {
	repo := newTestRepository(t)
	repo.now = func() time.Time { return baseTime }

	created, err := repo.Create(context.Background(), domain.Notification{
		Type:  domain.TypeSystem,
		Title: "Maintenance tonight",
	})
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)
	assert.Equal(t, baseTime, created.CreatedAt)
	assert.Equal(t, domain.PriorityMedium, created.Priority)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Create(context.Background(), domain.Notification{Type: domain.TypeHR})
	assert.Error(t, err)

	_, err = repo.Create(context.Background(), domain.Notification{
		Type: domain.TypeHR, Title: "x", Department: "marketing",
	})
	assert.Error(t, err)
}
