package models

import "time"

// Request is a posting describing an item the author wishes existed.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"-"`
	Created     time.Time `json:"created"`
}

// RequestView is a request enriched with the items created against it.
type RequestView struct {
	Request
	Items []*Item `json:"items"`
}
