package web

import (
	"encoding/json"
	"net/http"

	"shareit/internal/apperr"
)

// UnexpectedMessage replaces the text of errors that are not safe to show.
const UnexpectedMessage = "unexpected error"

// StatusFor maps an error kind onto its HTTP status. Forbidden is reported
// as not found.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound, apperr.KindForbidden:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}
