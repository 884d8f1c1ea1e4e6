package api

import (
	"net/http"

	"shareit/internal/apperr"
	"shareit/internal/web"

	"github.com/rs/zerolog"
)

// writeAppError is the single translation point from service errors to
// responses. Unexpected errors are logged and replaced with a generic message.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := web.StatusFor(apperr.KindOf(err))
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		web.WriteError(w, status, web.UnexpectedMessage)
		return
	}
	web.WriteError(w, status, err.Error())
}
