package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// NewBooking is the input of BookingService.Create.
type NewBooking struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type BookingService struct {
	repo             domain.Repository
	eventBus         domain.EventPublisher
	bookerCurrentAsc bool
	now              func() time.Time
	logger           *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, bookerCurrentAsc bool, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:             repo,
		eventBus:         eventBus,
		bookerCurrentAsc: bookerCurrentAsc,
		now:              time.Now,
		logger:           componentLogger(logger, "booking_service"),
	}
}

func (s *BookingService) Create(ctx context.Context, bookerID int64, in NewBooking) (*models.Booking, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, apperr.Validation("booking start and end are required")
	}
	if !in.Start.Before(in.End) {
		return nil, apperr.Validation("booking start must be before end")
	}

	var booking *models.Booking
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, bookerID); err != nil {
			return lookupErr(err, "user", bookerID)
		}
		item, err := r.GetItem(ctx, in.ItemID)
		if err != nil {
			return lookupErr(err, "item", in.ItemID)
		}
		if !item.Available {
			return apperr.Validation("item %d is not available", item.ID)
		}
		if item.OwnerID == bookerID {
			return apperr.NotFound("owner cannot book their own item %d", item.ID)
		}

		b := &models.Booking{
			Start:    in.Start,
			End:      in.End,
			ItemID:   item.ID,
			BookerID: bookerID,
			Status:   models.StatusWaiting,
		}
		if err := r.CreateBooking(ctx, b); err != nil {
			return err
		}
		booking, err = r.GetBooking(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", booking.ItemID).Int64("booker_id", bookerID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, bookerID)
	return booking, nil
}

// Approve moves a waiting booking to APPROVED or REJECTED. The status is
// re-checked in the UPDATE itself so two concurrent decisions cannot both apply.
func (s *BookingService) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error) {
	to := models.StatusRejected
	if approved {
		to = models.StatusApproved
	}

	var booking *models.Booking
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, ownerID); err != nil {
			return lookupErr(err, "user", ownerID)
		}
		b, err := r.GetBooking(ctx, bookingID)
		if err != nil {
			return lookupErr(err, "booking", bookingID)
		}
		if b.Status == models.StatusApproved {
			return apperr.Validation("booking %d is already approved", bookingID)
		}
		if !b.Item.Available {
			return apperr.Validation("item %d is not available", b.ItemID)
		}
		if b.Item.OwnerID != ownerID {
			return apperr.NotFound("booking %d not found", bookingID)
		}

		if err := r.UpdateBookingStatusFrom(ctx, bookingID, models.StatusWaiting, to); err != nil {
			if errors.Is(err, database.ErrStatusChanged) {
				return apperr.Validation("booking %d is not waiting for approval", bookingID)
			}
			return fmt.Errorf("failed to approve booking %d: %w", bookingID, err)
		}
		b.Status = to
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventType := events.EventBookingRejected
	if approved {
		eventType = events.EventBookingApproved
	}
	s.logger.Info().Int64("booking_id", bookingID).Str("status", string(to)).Msg("booking decided")
	s.publishEvent(eventType, booking, ownerID)
	return booking, nil
}

// Cancel lets the booker withdraw a booking that is still waiting.
func (s *BookingService) Cancel(ctx context.Context, bookerID, bookingID int64) (*models.Booking, error) {
	var booking *models.Booking
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, bookerID); err != nil {
			return lookupErr(err, "user", bookerID)
		}
		b, err := r.GetBooking(ctx, bookingID)
		if err != nil {
			return lookupErr(err, "booking", bookingID)
		}
		if b.BookerID != bookerID {
			return apperr.NotFound("booking %d not found", bookingID)
		}
		if err := r.UpdateBookingStatusFrom(ctx, bookingID, models.StatusWaiting, models.StatusCanceled); err != nil {
			if errors.Is(err, database.ErrStatusChanged) {
				return apperr.Validation("only waiting bookings can be canceled")
			}
			return fmt.Errorf("failed to cancel booking %d: %w", bookingID, err)
		}
		b.Status = models.StatusCanceled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", bookingID).Msg("booking canceled")
	s.publishEvent(events.EventBookingCanceled, booking, bookerID)
	return booking, nil
}

// Get returns the booking if userID is its booker or the item's owner.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	var booking *models.Booking
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, userID); err != nil {
			return lookupErr(err, "user", userID)
		}
		b, err := r.GetBooking(ctx, bookingID)
		if err != nil {
			return lookupErr(err, "booking", bookingID)
		}
		if b.BookerID != userID && b.Item.OwnerID != userID {
			return apperr.NotFound("booking %d not found", bookingID)
		}
		booking = b
		return nil
	})
	return booking, err
}

func (s *BookingService) ListForBooker(ctx context.Context, userID int64, state string, skip, take int) ([]*models.Booking, error) {
	return s.list(ctx, models.RoleBooker, userID, state, skip, take)
}

func (s *BookingService) ListForOwner(ctx context.Context, userID int64, state string, skip, take int) ([]*models.Booking, error) {
	return s.list(ctx, models.RoleOwner, userID, state, skip, take)
}

func (s *BookingService) list(ctx context.Context, role models.BookingRole, userID int64, state string, skip, take int) ([]*models.Booking, error) {
	st, err := models.ParseState(state)
	if err != nil {
		return nil, err
	}

	var bookings []*models.Booking
	err = s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, userID); err != nil {
			return lookupErr(err, "user", userID)
		}
		q := PlanQuery(st, role, s.now(), s.bookerCurrentAsc)
		q.UserID = userID
		q.Skip = skip
		q.Take = take
		bookings, err = r.FindBookings(ctx, q)
		return err
	})
	return bookings, err
}

func (s *BookingService) GetLastBooking(ctx context.Context, itemID int64) (*models.BookingInfo, error) {
	var info *models.BookingInfo
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		b, err := r.LastBooking(ctx, itemID, s.now())
		info = b.Info()
		return err
	})
	return info, err
}

func (s *BookingService) GetNextBooking(ctx context.Context, itemID int64) (*models.BookingInfo, error) {
	var info *models.BookingInfo
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		b, err := r.NextBooking(ctx, itemID, s.now())
		info = b.Info()
		return err
	})
	return info, err
}

func (s *BookingService) HasCompletedBooking(ctx context.Context, bookerID, itemID int64) (bool, error) {
	var ok bool
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		var err error
		ok, err = r.HasCompletedBooking(ctx, bookerID, itemID, s.now())
		return err
	})
	return ok, err
}

// ExportForOwner returns up to limit bookings of the owner's items for export.
func (s *BookingService) ExportForOwner(ctx context.Context, ownerID int64, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, ownerID); err != nil {
			return lookupErr(err, "user", ownerID)
		}
		var err error
		bookings, err = r.ListBookingsForExport(ctx, ownerID, limit)
		return err
	})
	return bookings, err
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}
	if booking.Item != nil {
		payload.OwnerID = booking.Item.OwnerID
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
