package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/events"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/metrics"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type createApplicationRequest struct {
	JobListingID  *int       `json:"jobListingId"`
	Status        string     `json:"status" validate:"omitempty,oneof=applied interview offer rejected"`
	AppliedDate   *time.Time `json:"appliedDate"`
	InterviewDate *time.Time `json:"interviewDate"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	Notes         string     `json:"notes"`
	ResumeVersion string     `json:"resumeVersion"`
	CoverLetter   string     `json:"coverLetter"`
}

type updateApplicationRequest struct {
	Status        *string    `json:"status" validate:"omitempty,oneof=applied interview offer rejected"`
	AppliedDate   *time.Time `json:"appliedDate"`
	InterviewDate *time.Time `json:"interviewDate"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	Notes         *string    `json:"notes"`
	ResumeVersion *string    `json:"resumeVersion"`
	CoverLetter   *string    `json:"coverLetter"`
}

type quickApplyRequest struct {
	JobListingID int `json:"jobListingId" validate:"required"`
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	page, limit := parsePagination(r)

	var status entities.ApplicationStatus
	if v := r.URL.Query().Get("status"); v != "" {
		parsed, err := entities.ToApplicationStatus(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		status = parsed
	}

	rows, total, err := s.repos.Applications.ListByUser(r.Context(), userID, page, limit, status)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to list applications: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse{Data: rows, Total: total})
}

func (s *Server) getApplicationStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	stats, err := s.stats.Summary(r.Context(), userID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to compute application stats: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch application stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) createApplication(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid application: "+err.Error())
		return
	}

	if req.JobListingID != nil && !s.listingExists(w, r, *req.JobListingID) {
		return
	}

	app := entities.Application{
		UserID:        userID,
		JobListingID:  req.JobListingID,
		Status:        entities.ApplicationStatus(req.Status),
		InterviewDate: req.InterviewDate,
		FollowUpDate:  req.FollowUpDate,
		Notes:         req.Notes,
		ResumeVersion: req.ResumeVersion,
		CoverLetter:   req.CoverLetter,
	}
	if req.AppliedDate != nil {
		app.AppliedDate = *req.AppliedDate
	}

	if err := s.repos.Applications.Create(r.Context(), &app); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create application: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	metrics.ApplicationsSubmitted.Inc()
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		UserID:        userID,
		ApplicationID: app.ID,
		JobListingID:  app.JobListingID,
	})

	respondJSON(w, http.StatusOK, app)
}

func (s *Server) updateApplication(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req updateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid application: "+err.Error())
		return
	}

	changes := map[string]any{}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.AppliedDate != nil {
		changes["applied_date"] = *req.AppliedDate
	}
	if req.InterviewDate != nil {
		changes["interview_date"] = *req.InterviewDate
	}
	if req.FollowUpDate != nil {
		changes["follow_up_date"] = *req.FollowUpDate
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}
	if req.ResumeVersion != nil {
		changes["resume_version"] = *req.ResumeVersion
	}
	if req.CoverLetter != nil {
		changes["cover_letter"] = *req.CoverLetter
	}
	if len(changes) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	// The previous status is needed to tell an actual transition apart
	// from a same-value write; the lookup also applies the ownership
	// scope before any mutation.
	previous, err := s.repos.Applications.GetByID(r.Context(), id, userID)
	if err != nil {
		s.respondRepoError(w, err, "Application not found", "failed to get application")
		return
	}

	app, err := s.repos.Applications.Update(r.Context(), id, userID, changes)
	if err != nil {
		s.respondRepoError(w, err, "Application not found", "failed to update application")
		return
	}

	if req.Status != nil && previous.Status != app.Status {
		s.bus.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
			UserID:        userID,
			ApplicationID: app.ID,
			Previous:      previous.Status,
			Current:       app.Status,
		})
	}

	respondJSON(w, http.StatusOK, app)
}

func (s *Server) deleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	if err := s.repos.Applications.Delete(r.Context(), id, userID); err != nil {
		s.respondRepoError(w, err, "Application not found", "failed to delete application")
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// quickApply creates an application with default status and applied date
// in a single step.
func (s *Server) quickApply(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req quickApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "jobListingId is required")
		return
	}

	if !s.listingExists(w, r, req.JobListingID) {
		return
	}

	app := entities.Application{
		UserID:       userID,
		JobListingID: &req.JobListingID,
	}
	if err := s.repos.Applications.Create(r.Context(), &app); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to quick apply: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to apply to job")
		return
	}

	metrics.ApplicationsSubmitted.Inc()
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		UserID:        userID,
		ApplicationID: app.ID,
		JobListingID:  app.JobListingID,
	})

	respondJSON(w, http.StatusOK, app)
}

// listingExists rejects references to unknown listings before an insert
// can trip the foreign key. Writes the error response itself and returns
// false when the listing is missing.
func (s *Server) listingExists(w http.ResponseWriter, r *http.Request, id int) bool {
	_, err := s.repos.Listings.GetByID(r.Context(), id)
	if err == nil {
		return true
	}
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Job listing not found")
	} else {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to check job listing: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to check job listing")
	}
	return false
}

// respondRepoError maps ErrNotFound to 404 and everything else to a
// logged server error.
func (s *Server) respondRepoError(w http.ResponseWriter, err error, notFoundMsg, logMsg string) {
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("%s: %v", logMsg, err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
