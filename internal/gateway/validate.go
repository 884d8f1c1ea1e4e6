package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

func decodeBody(body []byte, v any) error {
	if len(body) == 0 {
		return apperr.Validation("request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperr.Validation("invalid JSON body")
	}
	return nil
}

func positiveID(raw, name string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("%s must be a positive integer", name)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (s *Server) validateUser(r *http.Request, _ []byte) error {
	raw := r.Header.Get(models.HeaderUserID)
	if blank(raw) {
		return apperr.Validation("missing %s header", models.HeaderUserID)
	}
	return positiveID(raw, models.HeaderUserID)
}

func (s *Server) validatePathID(r *http.Request, _ []byte) error {
	return positiveID(r.PathValue("id"), "id")
}

func (s *Server) validateUserPath(r *http.Request, body []byte) error {
	if err := s.validateUser(r, body); err != nil {
		return err
	}
	return s.validatePathID(r, body)
}

func (s *Server) validatePage(r *http.Request) error {
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil || v < 0 {
			return apperr.Validation("from must be a non-negative integer")
		}
	}
	if raw := q.Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil || v <= 0 {
			return apperr.Validation("size must be a positive integer")
		}
	}
	return nil
}

func (s *Server) validateUserPage(r *http.Request, body []byte) error {
	if err := s.validateUser(r, body); err != nil {
		return err
	}
	return s.validatePage(r)
}

type userInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *Server) validateCreateUser(_ *http.Request, body []byte) error {
	var in userInput
	if err := decodeBody(body, &in); err != nil {
		return err
	}
	if in.Name == nil || blank(*in.Name) {
		return apperr.Validation("name must not be blank")
	}
	if in.Email == nil {
		return apperr.Validation("email must not be blank")
	}
	return models.ValidateEmail(*in.Email)
}

func (s *Server) validateUpdateUser(r *http.Request, body []byte) error {
	if err := s.validatePathID(r, body); err != nil {
		return err
	}
	var in userInput
	if err := decodeBody(body, &in); err != nil {
		return err
	}
	if in.Name != nil && blank(*in.Name) {
		return apperr.Validation("name must not be blank")
	}
	if in.Email != nil {
		return models.ValidateEmail(*in.Email)
	}
	return nil
}

type itemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

func (s *Server) validateCreateItem(r *http.Request, body []byte) error {
	if err := s.validateUser(r, body); err != nil {
		return err
	}
	var in itemInput
	if err := decodeBody(body, &in); err != nil {
		return err
	}
	switch {
	case blank(in.Name):
		return apperr.Validation("item name must not be blank")
	case blank(in.Description):
		return apperr.Validation("item description must not be blank")
	case in.Available == nil:
		return apperr.Validation("item availability is required")
	case in.RequestID != nil && *in.RequestID <= 0:
		return apperr.Validation("requestId must be a positive integer")
	}
	return nil
}

func (s *Server) validateComment(r *http.Request, body []byte) error {
	if err := s.validateUserPath(r, body); err != nil {
		return err
	}
	var in struct {
		Text string `json:"text"`
	}
	if err := decodeBody(body, &in); err != nil {
		return err
	}
	if blank(in.Text) {
		return apperr.Validation("comment text must not be blank")
	}
	return nil
}

func (s *Server) validateCreateRequest(r *http.Request, body []byte) error {
	if err := s.validateUser(r, body); err != nil {
		return err
	}
	var in struct {
		Description string `json:"description"`
	}
	if err := decodeBody(body, &in); err != nil {
		return err
	}
	if blank(in.Description) {
		return apperr.Validation("request description must not be blank")
	}
	return nil
}

type bookingInput struct {
	ItemID *int64 `json:"itemId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// validateCreateBooking requires a positive item id and a non-empty interval
// that starts no earlier than now.
func (s *Server) validateCreateBooking(r *http.Request, body []byte) error {
	if err := s.validateUser(r, body); err != nil {
		return err
	}
	var in bookingInput
	if err := decodeBody(body, &in); err != nil {
		return err
	}
	if in.ItemID == nil || *in.ItemID <= 0 {
		return apperr.Validation("itemId must be a positive integer")
	}
	start, err := models.ParseTimestamp(in.Start)
	if err != nil {
		return err
	}
	end, err := models.ParseTimestamp(in.End)
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return apperr.Validation("booking start must be before end")
	}
	if start.Before(s.now()) {
		return apperr.Validation("booking start must not be in the past")
	}
	return nil
}

func (s *Server) validateBookingList(r *http.Request, body []byte) error {
	if err := s.validateUserPage(r, body); err != nil {
		return err
	}
	if state := r.URL.Query().Get("state"); state != "" {
		if _, err := models.ParseState(state); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) validateApprove(r *http.Request, body []byte) error {
	if err := s.validateUserPath(r, body); err != nil {
		return err
	}
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		return apperr.Validation("approved must be true or false")
	}
	return nil
}
