package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/config"
	"shareit/internal/models"
)

func userID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(models.HeaderUserID))
	if raw == "" {
		return 0, apperr.Validation("missing %s header", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid %s header: %s", models.HeaderUserID, raw)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid %s: %s", name, raw)
	}
	return id, nil
}

// page reads from/size, applying configured defaults, and returns the
// resulting (skip, take) window.
func page(r *http.Request, cfg config.PaginationConfig) (int, int, error) {
	q := r.URL.Query()
	from, size := cfg.DefaultFrom, cfg.DefaultSize

	if raw := q.Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, apperr.Validation("from must be a non-negative integer")
		}
		from = v
	}
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, apperr.Validation("size must be a positive integer")
		}
		size = v
	}
	return models.PageSkip(from, size), size, nil
}

func stateParam(r *http.Request) string {
	if s := r.URL.Query().Get("state"); s != "" {
		return s
	}
	return string(models.StateAll)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid JSON body")
	}
	return nil
}
