package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupNotifications_ByType(t *testing.T) {
	notifs := []Notification{
		sample("n1", TypeHR, false, 0),
		sample("n2", TypeFinance, true, 1),
		sample("n3", TypeHR, true, 2),
	}

	result := GroupNotifications(notifs, GroupByType)
	require.Len(t, result.Groups, 2)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 1, result.TotalUnread)

	assert.Equal(t, "finance", result.Groups[0].Key)
	assert.Equal(t, "hr", result.Groups[1].Key)
	assert.Equal(t, 2, result.Groups[1].Count)
	assert.Equal(t, 1, result.Groups[1].UnreadCount)
}

func TestGroupNotifications_NoneAndInvalid(t *testing.T) {
	notifs := []Notification{sample("n1", TypeHR, false, 0)}

	assert.Empty(t, GroupNotifications(notifs, GroupByNone).Groups)

	result := GroupNotifications(notifs, GroupByMode("session"))
	assert.Equal(t, GroupByNone, result.Mode)
	assert.Empty(t, result.Groups)
}

func TestGroupNotifications_EmptyKey(t *testing.T) {
	n := sample("n1", TypeHR, false, 0)
	n.Department = ""

	result := GroupNotifications([]Notification{n}, GroupByDepartment)
	require.Len(t, result.Groups, 1)
	assert.Equal(t, "(empty)", result.Groups[0].Key)
}

func TestCountByType(t *testing.T) {
	counts := CountByType([]Notification{
		sample("n1", TypeHR, false, 0),
		sample("n2", TypeHR, false, 1),
		sample("n3", TypeSystem, false, 2),
	})
	assert.Equal(t, 2, counts[TypeHR])
	assert.Equal(t, 1, counts[TypeSystem])
	assert.Equal(t, 0, counts[TypeForms])
}
