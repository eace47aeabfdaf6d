package api

import (
	"encoding/json"
	"net/http"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Pointer fields distinguish "field omitted" from zero values, so
// defaults only fill in what the client left out.
type preferencesRequest struct {
	JobTitle          *string `json:"jobTitle"`
	PreferredLocation *string `json:"preferredLocation"`
	MinSalary         *int    `json:"minSalary"`
	WorkType          *string `json:"workType" validate:"omitempty,oneof=remote hybrid onsite any"`
	DailyGoal         *int    `json:"dailyGoal" validate:"omitempty,gte=0"`
	WeeklyGoal        *int    `json:"weeklyGoal" validate:"omitempty,gte=0"`
	MonthlyGoal       *int    `json:"monthlyGoal" validate:"omitempty,gte=0"`
	EmailSummary      *bool   `json:"emailSummary"`
	JobAlerts         *bool   `json:"jobAlerts"`
	Reminders         *bool   `json:"reminders"`
}

func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	prefs, err := s.repos.Preferences.GetByUser(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "Preferences not found", "failed to get preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) createPreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid preferences: "+err.Error())
		return
	}

	if _, err := s.repos.Preferences.GetByUser(r.Context(), userID); err == nil {
		respondError(w, http.StatusConflict, "Preferences already exist")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to check preferences: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create preferences")
		return
	}

	prefs := entities.UserPreferences{
		UserID:       userID,
		WorkType:     entities.WorkAny,
		DailyGoal:    entities.DefaultDailyGoal,
		WeeklyGoal:   entities.DefaultWeeklyGoal,
		MonthlyGoal:  entities.DefaultMonthlyGoal,
		EmailSummary: true,
		JobAlerts:    true,
		Reminders:    false,
		MinSalary:    req.MinSalary,
	}
	if req.JobTitle != nil {
		prefs.JobTitle = *req.JobTitle
	}
	if req.PreferredLocation != nil {
		prefs.PreferredLocation = *req.PreferredLocation
	}
	if req.WorkType != nil {
		prefs.WorkType = entities.WorkType(*req.WorkType)
	}
	if req.DailyGoal != nil {
		prefs.DailyGoal = *req.DailyGoal
	}
	if req.WeeklyGoal != nil {
		prefs.WeeklyGoal = *req.WeeklyGoal
	}
	if req.MonthlyGoal != nil {
		prefs.MonthlyGoal = *req.MonthlyGoal
	}
	if req.EmailSummary != nil {
		prefs.EmailSummary = *req.EmailSummary
	}
	if req.JobAlerts != nil {
		prefs.JobAlerts = *req.JobAlerts
	}
	if req.Reminders != nil {
		prefs.Reminders = *req.Reminders
	}

	if err := s.repos.Preferences.Create(r.Context(), &prefs); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create preferences: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) updatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid preferences: "+err.Error())
		return
	}

	changes := map[string]any{}
	if req.JobTitle != nil {
		changes["job_title"] = *req.JobTitle
	}
	if req.PreferredLocation != nil {
		changes["preferred_location"] = *req.PreferredLocation
	}
	if req.MinSalary != nil {
		changes["min_salary"] = *req.MinSalary
	}
	if req.WorkType != nil {
		changes["work_type"] = *req.WorkType
	}
	if req.DailyGoal != nil {
		changes["daily_goal"] = *req.DailyGoal
	}
	if req.WeeklyGoal != nil {
		changes["weekly_goal"] = *req.WeeklyGoal
	}
	if req.MonthlyGoal != nil {
		changes["monthly_goal"] = *req.MonthlyGoal
	}
	if req.EmailSummary != nil {
		changes["email_summary"] = *req.EmailSummary
	}
	if req.JobAlerts != nil {
		changes["job_alerts"] = *req.JobAlerts
	}
	if req.Reminders != nil {
		changes["reminders"] = *req.Reminders
	}
	if len(changes) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	prefs, err := s.repos.Preferences.Update(r.Context(), userID, changes)
	if err != nil {
		s.respondRepoError(w, err, "Preferences not found", "failed to update preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}
