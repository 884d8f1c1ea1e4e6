package service

import (
	"time"

	"shareit/internal/models"
)

// PlanQuery maps a booking state, a role and an instant onto the filter and
// sort of a single booking query. The caller fills in user and window.
//
// Every combination sorts by start descending, except the booker's CURRENT
// list when bookerCurrentAsc is set.
func PlanQuery(state models.State, role models.BookingRole, now time.Time, bookerCurrentAsc bool) models.BookingQuery {
	q := models.BookingQuery{Role: role}

	switch state {
	case models.StateCurrent:
		q.StartBefore = &now
		q.EndAfter = &now
		q.Ascending = role == models.RoleBooker && bookerCurrentAsc
	case models.StatePast:
		q.EndBefore = &now
	case models.StateFuture:
		q.StartAfter = &now
	case models.StateWaiting:
		st := models.StatusWaiting
		q.Status = &st
	case models.StateRejected:
		st := models.StatusRejected
		q.Status = &st
	case models.StateAll:
	}

	return q
}
