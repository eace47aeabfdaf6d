package api

import (
	"net/http"
	"strconv"

	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repositories"
	log "github.com/sirupsen/logrus"
)

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := repositories.ListingFilter{
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
		Remote:   r.URL.Query().Get("remote") == "true",
	}

	if v := r.URL.Query().Get("salaryMin"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid salaryMin")
			return
		}
		filter.SalaryMin = &min
	}
	if v := r.URL.Query().Get("salaryMax"); v != "" {
		max, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid salaryMax")
			return
		}
		filter.SalaryMax = &max
	}

	listings, total, err := s.repos.Listings.Search(r.Context(), filter, page, limit)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to search job listings: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse{Data: listings, Total: total})
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	listing, err := s.repos.Listings.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "Job not found", "failed to get job listing")
		return
	}

	respondJSON(w, http.StatusOK, listing)
}
