package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemUpdate carries a partial item change. Nil fields are no-ops, not clears.
type ItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (p ItemUpdate) Apply(i *Item) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Available != nil {
		i.Available = *p.Available
	}
}

// ItemView is an item as shown to a reader. LastBooking and NextBooking are
// only filled in for the owner.
type ItemView struct {
	Item
	LastBooking *BookingInfo `json:"lastBooking"`
	NextBooking *BookingInfo `json:"nextBooking"`
	Comments    []*Comment   `json:"comments"`
}
