package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64, skip, take int) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, skip, take int) ([]*models.Item, error)
	ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, req *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.Request, error)
	ListOtherRequests(ctx context.Context, requestorID int64, skip, take int) ([]*models.Request, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusFrom(ctx context.Context, id int64, from, to models.Status) error
	FindBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error)
	// LastBooking and NextBooking return nil without error when nothing qualifies.
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	ListBookingsForExport(ctx context.Context, ownerID int64, limit int) ([]*models.Booking, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

// Repository is the full store. WithTx runs fn against a repository bound to
// a single transaction that commits only if fn returns nil.
type Repository interface {
	UserRepository
	ItemRepository
	RequestRepository
	BookingRepository
	CommentRepository

	WithTx(ctx context.Context, readOnly bool, fn func(Repository) error) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
