package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"filter with type", Filter{Type: TypeHR}, false},
		{"filter with department", Filter{Department: DepartmentIT}, false},
		{"filter with unread", Filter{UnreadOnly: true}, false},
		{"filter with query", Filter{Query: "leave"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.IsEmpty())
		})
	}
}

func TestFilterOptions_ToFilter(t *testing.T) {
	t.Run("valid filter options", func(t *testing.T) {
		opts := FilterOptions{
			Type:       "finance",
			Department: "it",
			Priority:   "high",
			UnreadOnly: true,
			Query:      "invoice",
		}

		filter, err := opts.ToFilter()
		require.NoError(t, err)
		assert.Equal(t, TypeFinance, filter.Type)
		assert.Equal(t, DepartmentIT, filter.Department)
		assert.Equal(t, PriorityHigh, filter.Priority)
		assert.True(t, filter.UnreadOnly)
		assert.Equal(t, "invoice", filter.Query)
	})

	t.Run("invalid department", func(t *testing.T) {
		_, err := FilterOptions{Department: "legal"}.ToFilter()
		assert.Error(t, err)
	})

	t.Run("invalid priority", func(t *testing.T) {
		_, err := FilterOptions{Priority: "urgent"}.ToFilter()
		assert.Error(t, err)
	})
}

func TestFilterByType_PreservesOrder(t *testing.T) {
	notifs := []Notification{
		sample("n1", TypeHR, false, 0),
		sample("n2", TypeFinance, true, 1),
		sample("n3", TypeHR, true, 2),
		sample("n4", TypeSystem, false, 3),
		sample("n5", TypeHR, false, 4),
	}

	got := FilterByType(notifs, TypeHR)
	require.Len(t, got, 3)
	assert.Equal(t, "n1", got[0].ID)
	assert.Equal(t, "n3", got[1].ID)
	assert.Equal(t, "n5", got[2].ID)
}

func TestFilterNotifications_ReturnsNewSlice(t *testing.T) {
	notifs := []Notification{sample("n1", TypeHR, false, 0)}

	got := FilterNotifications(notifs, Filter{})
	got[0].Read = true

	assert.False(t, notifs[0].Read)
}

func TestFilterByDepartment(t *testing.T) {
	a := sample("n1", TypeHR, false, 0)
	b := sample("n2", TypeHR, false, 1)
	b.Department = DepartmentIT

	got := FilterByDepartment([]Notification{a, b}, DepartmentIT)
	require.Len(t, got, 1)
	assert.Equal(t, "n2", got[0].ID)
}

func TestSearchNotifications(t *testing.T) {
	a := sample("n1", TypeHR, false, 0)
	a.Title = "Leave request approved"
	b := sample("n2", TypeFinance, false, 1)
	b.Message = "Invoice #1234 has been processed"

	assert.Len(t, SearchNotifications([]Notification{a, b}, "LEAVE"), 1)
	assert.Len(t, SearchNotifications([]Notification{a, b}, "invoice"), 1)
	assert.Len(t, SearchNotifications([]Notification{a, b}, "payroll"), 0)
}

func TestFilterUnreadAndPriority(t *testing.T) {
	a := sample("n1", TypeHR, false, 0)
	a.Priority = PriorityHigh
	b := sample("n2", TypeHR, true, 1)

	assert.Len(t, FilterUnread([]Notification{a, b}), 1)
	assert.Len(t, FilterByPriority([]Notification{a, b}, PriorityHigh), 1)
}
