package api

import (
	"net/http"

	"shareit/internal/apperr"
	"shareit/internal/models"
	"shareit/internal/web"
)

type itemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type commentInput struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	var in itemInput
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}
	if in.Available == nil {
		writeAppError(w, r, apperr.Validation("item availability is required"))
		return
	}

	item, err := s.svc.Items.Create(r.Context(), uid, &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		RequestID:   in.RequestID,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
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
	var upd models.ItemUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeAppError(w, r, err)
		return
	}
	item, err := s.svc.Items.Update(r.Context(), uid, id, upd)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
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
	view, err := s.svc.Items.Get(r.Context(), uid, id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
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
	views, err := s.svc.Items.ListByOwner(r.Context(), uid, skip, take)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	skip, take, err := page(r, s.pagination)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	items, err := s.svc.Items.Search(r.Context(), r.URL.Query().Get("text"), skip, take)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
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
	var in commentInput
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}
	comment, err := s.svc.Items.AddComment(r.Context(), uid, id, in.Text)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, comment)
}
