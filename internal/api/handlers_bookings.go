package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/apperr"
	"shareit/internal/export"
	"shareit/internal/models"
	"shareit/internal/service"
	"shareit/internal/web"
)

type bookingInput struct {
	ItemID *int64 `json:"itemId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func (in bookingInput) toNewBooking() (service.NewBooking, error) {
	if in.ItemID == nil {
		return service.NewBooking{}, apperr.Validation("itemId is required")
	}
	start, err := models.ParseTimestamp(in.Start)
	if err != nil {
		return service.NewBooking{}, err
	}
	end, err := models.ParseTimestamp(in.End)
	if err != nil {
		return service.NewBooking{}, err
	}
	return service.NewBooking{ItemID: *in.ItemID, Start: start, End: end}, nil
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	var in bookingInput
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}
	nb, err := in.toNewBooking()
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	booking, err := s.svc.Bookings.Create(r.Context(), uid, nb)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeAppError(w, r, apperr.Validation("approved must be true or false"))
		return
	}
	booking, err := s.svc.Bookings.Approve(r.Context(), uid, id, approved)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	booking, err := s.svc.Bookings.Cancel(r.Context(), uid, id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	booking, err := s.svc.Bookings.Get(r.Context(), uid, id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.svc.Bookings.ListForBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.svc.Bookings.ListForOwner)
}

type bookingLister func(ctx context.Context, userID int64, state string, skip, take int) ([]*models.Booking, error)

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, list bookingLister) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	skip, take, err := page(r, s.pagination)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	bookings, err := list(r.Context(), uid, stateParam(r), skip, take)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	bookings, err := s.svc.Bookings.ExportForOwner(r.Context(), uid, s.exportMax)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBookings(&buf, bookings); err != nil {
		writeAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings_owner_%d.xlsx"`, uid))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
