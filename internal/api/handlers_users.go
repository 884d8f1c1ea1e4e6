package api

import (
	"net/http"

	"shareit/internal/models"
	"shareit/internal/web"
)

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.User
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}
	user, err := s.svc.Users.Create(r.Context(), &in)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	user, err := s.svc.Users.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	var upd models.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeAppError(w, r, err)
		return
	}
	user, err := s.svc.Users.Update(r.Context(), id, upd)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := s.svc.Users.Delete(r.Context(), id); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
