package api

import (
	"net/http"

	"shareit/internal/web"
)

type requestInput struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	var in requestInput
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}
	view, err := s.svc.Requests.Create(r.Context(), uid, in.Description)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	views, err := s.svc.Requests.ListOwn(r.Context(), uid)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
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
	views, err := s.svc.Requests.ListOthers(r.Context(), uid, skip, take)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
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
	view, err := s.svc.Requests.Get(r.Context(), uid, id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, view)
}
