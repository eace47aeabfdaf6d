package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type resumeProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

type updateResumeProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Summary  *string `json:"summary"`
}

type workExperienceRequest struct {
	ResumeProfileID int        `json:"resumeProfileId" validate:"required"`
	Title           string     `json:"title" validate:"required"`
	Company         string     `json:"company" validate:"required"`
	StartDate       time.Time  `json:"startDate" validate:"required"`
	EndDate         *time.Time `json:"endDate"`
	Description     string     `json:"description"`
}

type updateWorkExperienceRequest struct {
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description *string    `json:"description"`
}

type skillRequest struct {
	ResumeProfileID int    `json:"resumeProfileId" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Category        string `json:"category" validate:"required,oneof=technical soft certification"`
}

func (s *Server) getResumeProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	profile, err := s.repos.Resumes.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to get resume profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) createResumeProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req resumeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid resume profile: "+err.Error())
		return
	}

	if _, err := s.repos.Resumes.GetProfileByUser(r.Context(), userID); err == nil {
		respondError(w, http.StatusConflict, "Resume profile already exists")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to check resume profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create resume profile")
		return
	}

	profile := entities.ResumeProfile{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Summary:  req.Summary,
	}
	if err := s.repos.Resumes.CreateProfile(r.Context(), &profile); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create resume profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create resume profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) updateResumeProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	var req updateResumeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid resume profile: "+err.Error())
		return
	}

	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if req.Phone != nil {
		changes["phone"] = *req.Phone
	}
	if req.Location != nil {
		changes["location"] = *req.Location
	}
	if req.Summary != nil {
		changes["summary"] = *req.Summary
	}
	if len(changes) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	profile, err := s.repos.Resumes.UpdateProfile(r.Context(), id, userID, changes)
	if err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to update resume profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) deleteResumeProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}

	if err := s.repos.Resumes.DeleteProfile(r.Context(), id, userID); err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to delete resume profile")
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// ownedProfile resolves the caller's resume profile and checks that the
// requested profile id belongs to them. Child records hang off the
// profile, so ownership checks reduce to this single lookup.
func (s *Server) ownedProfile(w http.ResponseWriter, r *http.Request, profileID int) bool {
	userID, _ := userIDFromContext(r.Context())

	profile, err := s.repos.Resumes.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to get resume profile")
		return false
	}
	if profile.ID != profileID {
		respondError(w, http.StatusNotFound, "Resume profile not found")
		return false
	}
	return true
}

func (s *Server) listExperiences(w http.ResponseWriter, r *http.Request) {
	profileID, err := parseIDParam(r, "profileId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}
	if !s.ownedProfile(w, r, profileID) {
		return
	}

	experiences, err := s.repos.Resumes.GetExperiences(r.Context(), profileID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to list work experiences: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch work experiences")
		return
	}

	respondJSON(w, http.StatusOK, experiences)
}

func (s *Server) createExperience(w http.ResponseWriter, r *http.Request) {
	var req workExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid work experience: "+err.Error())
		return
	}
	if !s.ownedProfile(w, r, req.ResumeProfileID) {
		return
	}

	experience := entities.WorkExperience{
		ResumeProfileID: req.ResumeProfileID,
		Title:           req.Title,
		Company:         req.Company,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Description:     req.Description,
	}
	if err := s.repos.Resumes.CreateExperience(r.Context(), &experience); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create work experience: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create work experience")
		return
	}

	respondJSON(w, http.StatusOK, experience)
}

func (s *Server) updateExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid experience id")
		return
	}

	var req updateWorkExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	changes := map[string]any{}
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Company != nil {
		changes["company"] = *req.Company
	}
	if req.StartDate != nil {
		changes["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		changes["end_date"] = *req.EndDate
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if len(changes) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	profile, err := s.repos.Resumes.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to get resume profile")
		return
	}

	experience, err := s.repos.Resumes.UpdateExperience(r.Context(), id, profile.ID, changes)
	if err != nil {
		s.respondRepoError(w, err, "Work experience not found", "failed to update work experience")
		return
	}

	respondJSON(w, http.StatusOK, experience)
}

func (s *Server) deleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid experience id")
		return
	}

	profile, err := s.repos.Resumes.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to get resume profile")
		return
	}

	if err := s.repos.Resumes.DeleteExperience(r.Context(), id, profile.ID); err != nil {
		s.respondRepoError(w, err, "Work experience not found", "failed to delete work experience")
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	profileID, err := parseIDParam(r, "profileId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid profile id")
		return
	}
	if !s.ownedProfile(w, r, profileID) {
		return
	}

	skills, err := s.repos.Resumes.GetSkills(r.Context(), profileID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to list skills: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch skills")
		return
	}

	respondJSON(w, http.StatusOK, skills)
}

func (s *Server) createSkill(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid skill: "+err.Error())
		return
	}
	if !s.ownedProfile(w, r, req.ResumeProfileID) {
		return
	}

	skill := entities.Skill{
		ResumeProfileID: req.ResumeProfileID,
		Name:            req.Name,
		Category:        entities.SkillCategory(req.Category),
	}
	if err := s.repos.Resumes.CreateSkill(r.Context(), &skill); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create skill: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create skill")
		return
	}

	respondJSON(w, http.StatusOK, skill)
}

func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid skill id")
		return
	}

	profile, err := s.repos.Resumes.GetProfileByUser(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "Resume profile not found", "failed to get resume profile")
		return
	}

	if err := s.repos.Resumes.DeleteSkill(r.Context(), id, profile.ID); err != nil {
		s.respondRepoError(w, err, "Skill not found", "failed to delete skill")
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
