package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

type env struct {
	db       *database.DB
	bookings *BookingService
	items    *ItemService
	users    *UserService
	requests *RequestService
	bus      *mockPublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvAt(t, ":memory:")
}

func newEnvAt(t *testing.T, path string) *env {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(path, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := &mockPublisher{}
	bus.On("PublishJSON", mock.Anything, mock.Anything).Return(nil).Maybe()

	e := &env{
		db:       db,
		bookings: NewBookingService(db, bus, false, &logger),
		items:    NewItemService(db, bus, &logger),
		users:    NewUserService(db, &logger),
		requests: NewRequestService(db, &logger),
		bus:      bus,
	}
	e.setNow(testNow)
	return e
}

func (e *env) setNow(now time.Time) {
	clock := func() time.Time { return now }
	e.bookings.now = clock
	e.items.now = clock
	e.requests.now = clock
}

func (e *env) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), &models.User{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func (e *env) item(t *testing.T, ownerID int64, available bool) *models.Item {
	t.Helper()
	it, err := e.items.Create(context.Background(), ownerID, &models.Item{Name: "Drill", Description: "cordless", Available: available})
	require.NoError(t, err)
	return it
}

// booking inserts directly so tests can place bookings in the past.
func (e *env) booking(t *testing.T, itemID, bookerID int64, start, end time.Duration, status models.Status) *models.Booking {
	t.Helper()
	b := &models.Booking{
		Start:    testNow.Add(start),
		End:      testNow.Add(end),
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   status,
	}
	require.NoError(t, e.db.CreateBooking(context.Background(), b))
	return b
}

func bookingIDs(bookings []*models.Booking) []int64 {
	out := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}
