package models

import "shareit/internal/apperr"

// Status is the approval lifecycle value of a single booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// State is the category used to filter booking lists.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState matches s against the state names exactly (case-sensitive).
func ParseState(s string) (State, error) {
	for _, st := range states {
		if string(st) == s {
			return st, nil
		}
	}
	return "", apperr.Validation("Unknown state: %s", s)
}

const (
	// HeaderUserID carries the acting user's id on every request.
	HeaderUserID = "X-Sharer-User-Id"

	DefaultPageFrom = 0
	DefaultPageSize = 10

	DefaultExportMaxRows = 1000

	// DefaultRateLimitRequests per DefaultRateLimitWindow seconds, per user, at the gateway.
	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 60
)
