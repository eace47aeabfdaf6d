package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Message string `json:"message"`
}

type pagedResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// parsePagination reads page and limit with the documented defaults.
// Malformed or out-of-range values silently fall back rather than fail:
// pagination inputs come from UI widgets, not hand-written queries.
func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return page, limit
}

func parseIDParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.PathValue(name))
}
