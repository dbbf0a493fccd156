package domain

import "time"

var baseTime = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func sample(id string, typ Type, read bool, minutesAgo int) Notification {
	return Notification{
		ID:         id,
		Type:       typ,
		Department: DepartmentHR,
		Title:      "title " + id,
		Message:    "message " + id,
		Read:       read,
		CreatedAt:  baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
		Priority:   PriorityMedium,
	}
}
