package models

import "time"

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"-"`
	BookerID int64     `json:"-"`
	Status   Status    `json:"status"`

	// Filled in on reads joined with items and users.
	Item   *Item `json:"item,omitempty"`
	Booker *User `json:"booker,omitempty"`
}

// BookingInfo is the short form used for an item's last and next booking.
type BookingInfo struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (b *Booking) Info() *BookingInfo {
	if b == nil {
		return nil
	}
	return &BookingInfo{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

// BookingRole says whose bookings a query is scoped to.
type BookingRole int

const (
	// RoleBooker scopes to bookings made by the user.
	RoleBooker BookingRole = iota
	// RoleOwner scopes to bookings of items the user owns.
	RoleOwner
)

func (r BookingRole) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "booker"
}

// BookingQuery is a single filtered, ordered, paginated booking lookup.
// Nil bounds are not applied. Bounds are strict comparisons.
type BookingQuery struct {
	Role        BookingRole
	UserID      int64
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Status      *Status
	Ascending   bool
	Skip        int
	Take        int
}
