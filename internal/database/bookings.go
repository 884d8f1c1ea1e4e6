package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/models"
)

const bookingSelect = `
	SELECT b.id, b.start_time, b.end_time, b.item_id, b.booker_id, b.status,
	       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
	       u.id, u.name, u.email
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	booking.Start = utc(booking.Start)
	booking.End = utc(booking.End)
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO bookings (start_time, end_time, item_id, booker_id, status) VALUES (?, ?, ?, ?, ?)`,
		booking.Start, booking.End, booking.ItemID, booking.BookerID, booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", mapError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

// GetBooking returns the booking with its item and booker attached.
func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	row := db.q.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id)
	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return booking, nil
}

// UpdateBookingStatusFrom sets status to `to` only while it is still `from`.
// It returns ErrStatusChanged when the row exists but no longer matches.
func (db *DB) UpdateBookingStatusFrom(ctx context.Context, id int64, from, to models.Status) error {
	result, err := db.q.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", mapError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		var exists int
		err := db.q.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check booking %d: %w", id, err)
		}
		return ErrStatusChanged
	}
	return nil
}

// FindBookings runs one filtered, ordered, paginated query built from q.
func (db *DB) FindBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	var (
		where []string
		args  []any
	)

	switch q.Role {
	case models.RoleOwner:
		where = append(where, "i.owner_id = ?")
	default:
		where = append(where, "b.booker_id = ?")
	}
	args = append(args, q.UserID)

	if q.StartBefore != nil {
		where = append(where, "b.start_time < ?")
		args = append(args, utc(*q.StartBefore))
	}
	if q.StartAfter != nil {
		where = append(where, "b.start_time > ?")
		args = append(args, utc(*q.StartAfter))
	}
	if q.EndBefore != nil {
		where = append(where, "b.end_time < ?")
		args = append(args, utc(*q.EndBefore))
	}
	if q.EndAfter != nil {
		where = append(where, "b.end_time > ?")
		args = append(args, utc(*q.EndAfter))
	}
	if q.Status != nil {
		where = append(where, "b.status = ?")
		args = append(args, *q.Status)
	}

	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}
	take := q.Take
	if take <= 0 {
		take = -1
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}

	query := bookingSelect + ` WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY b.start_time %s, b.id %s LIMIT ? OFFSET ?`, dir, dir)
	args = append(args, take, skip)

	return db.queryBookings(ctx, query, args...)
}

// LastBooking is the approved booking that started before now with the latest end.
func (db *DB) LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return db.firstBooking(ctx, bookingSelect+`
		WHERE b.item_id = ? AND b.status = ? AND b.start_time < ?
		ORDER BY b.end_time DESC, b.id DESC LIMIT 1`,
		itemID, models.StatusApproved, utc(now))
}

// NextBooking is the approved booking with the earliest start after now.
func (db *DB) NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return db.firstBooking(ctx, bookingSelect+`
		WHERE b.item_id = ? AND b.status = ? AND b.start_time > ?
		ORDER BY b.start_time ASC, b.id ASC LIMIT 1`,
		itemID, models.StatusApproved, utc(now))
}

// HasCompletedBooking ignores status: any booking that ended counts.
func (db *DB) HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var exists int
	err := db.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE booker_id = ? AND item_id = ? AND end_time < ?)`,
		bookerID, itemID, utc(now),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}
	return exists == 1, nil
}

// ListBookingsForExport returns bookings of the owner's items, newest start first.
func (db *DB) ListBookingsForExport(ctx context.Context, ownerID int64, limit int) ([]*models.Booking, error) {
	if limit <= 0 {
		limit = -1
	}
	return db.queryBookings(ctx, bookingSelect+`
		WHERE i.owner_id = ?
		ORDER BY b.start_time DESC, b.id DESC LIMIT ?`,
		ownerID, limit)
}

func (db *DB) firstBooking(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	booking, err := scanBooking(db.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(s scanner) (*models.Booking, error) {
	var (
		b         models.Booking
		item      models.Item
		booker    models.User
		requestID sql.NullInt64
	)
	err := s.Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
		&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID,
		&booker.ID, &booker.Name, &booker.Email,
	)
	if err != nil {
		return nil, err
	}
	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	item.RequestID = int64Ptr(requestID)
	b.Item = &item
	b.Booker = &booker
	return &b, nil
}
