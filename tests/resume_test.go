package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/stretchr/testify/assert"
)

func clearResumeData() {
	dbCtx.DB.Exec("DELETE from skills WHERE TRUE")
	dbCtx.DB.Exec("DELETE from work_experiences WHERE TRUE")
	dbCtx.DB.Exec("DELETE from resume_profiles WHERE TRUE")
}

func createProfile(t *testing.T, userID string) *entities.ResumeProfile {
	t.Helper()

	resp, raw := doRequest(t, http.MethodPost, "/api/resume-profile", userID, map[string]any{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"location": "London",
		"summary":  "Engineer",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("could not create profile: %s", string(raw))
	}

	var profile entities.ResumeProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("could not unmarshal profile: %s", err)
	}
	return &profile
}

func Test_ResumeProfile_OnePerUser(t *testing.T) {

	defer clearResumeData()

	createProfile(t, "resume-user")

	resp, _ := doRequest(t, http.MethodPost, "/api/resume-profile", "resume-user", map[string]any{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_ResumeProfile_GetUpdateDelete(t *testing.T) {

	defer clearResumeData()

	profile := createProfile(t, "resume-user")

	resp, raw := doRequest(t, http.MethodGet, "/api/resume-profile", "resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched entities.ResumeProfile
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, profile.ID, fetched.ID)

	resp, raw = doRequest(t, http.MethodPut, fmt.Sprintf("/api/resume-profile/%d", profile.ID),
		"resume-user", map[string]any{"summary": "Staff engineer"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, "Staff engineer", fetched.Summary)
	assert.Equal(t, "Ada Lovelace", fetched.Name)

	//another user cannot touch it
	resp, _ = doRequest(t, http.MethodPut, fmt.Sprintf("/api/resume-profile/%d", profile.ID),
		"other-user", map[string]any{"summary": "hijacked"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/resume-profile/%d", profile.ID),
		"resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, "/api/resume-profile", "resume-user", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_WorkExperience_CRUD(t *testing.T) {

	defer clearResumeData()

	profile := createProfile(t, "resume-user")

	resp, raw := doRequest(t, http.MethodPost, "/api/work-experience", "resume-user", map[string]any{
		"resumeProfileId": profile.ID,
		"title":           "Backend Engineer",
		"company":         "Acme",
		"startDate":       time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var experience entities.WorkExperience
	assert.NoError(t, json.Unmarshal(raw, &experience))
	assert.Nil(t, experience.EndDate) //current position

	resp, raw = doRequest(t, http.MethodGet, fmt.Sprintf("/api/work-experience/%d", profile.ID),
		"resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var experiences []entities.WorkExperience
	assert.NoError(t, json.Unmarshal(raw, &experiences))
	assert.Len(t, experiences, 1)

	resp, raw = doRequest(t, http.MethodPut, fmt.Sprintf("/api/work-experience/%d", experience.ID),
		"resume-user", map[string]any{"endDate": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &experience))
	assert.NotNil(t, experience.EndDate)

	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/work-experience/%d", experience.ID),
		"resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_WorkExperience_ForeignProfileIsRejected(t *testing.T) {

	defer clearResumeData()

	profile := createProfile(t, "resume-user")

	resp, _ := doRequest(t, http.MethodPost, "/api/work-experience", "other-user", map[string]any{
		"resumeProfileId": profile.ID,
		"title":           "Backend Engineer",
		"company":         "Acme",
		"startDate":       time.Now(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, fmt.Sprintf("/api/work-experience/%d", profile.ID),
		"other-user", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_Skills_CreateListDelete(t *testing.T) {

	defer clearResumeData()

	profile := createProfile(t, "resume-user")

	resp, raw := doRequest(t, http.MethodPost, "/api/skills", "resume-user", map[string]any{
		"resumeProfileId": profile.ID,
		"name":            "Go",
		"category":        "technical",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var skill entities.Skill
	assert.NoError(t, json.Unmarshal(raw, &skill))
	assert.Equal(t, entities.SkillTechnical, skill.Category)

	resp, _ = doRequest(t, http.MethodPost, "/api/skills", "resume-user", map[string]any{
		"resumeProfileId": profile.ID,
		"name":            "Juggling",
		"category":        "circus",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = doRequest(t, http.MethodGet, fmt.Sprintf("/api/skills/%d", profile.ID),
		"resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var skills []entities.Skill
	assert.NoError(t, json.Unmarshal(raw, &skills))
	assert.Len(t, skills, 1)

	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/skills/%d", skill.ID),
		"resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_ResumeProfile_DeleteCascadesChildren(t *testing.T) {

	defer clearResumeData()

	profile := createProfile(t, "resume-user")

	for _, role := range []string{"Backend Engineer", "SRE"} {
		resp, _ := doRequest(t, http.MethodPost, "/api/work-experience", "resume-user", map[string]any{
			"resumeProfileId": profile.ID,
			"title":           role,
			"company":         "Acme",
			"startDate":       time.Now(),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	for _, name := range []string{"Go", "SQL", "Mentoring"} {
		resp, _ := doRequest(t, http.MethodPost, "/api/skills", "resume-user", map[string]any{
			"resumeProfileId": profile.ID,
			"name":            name,
			"category":        "technical",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, _ := doRequest(t, http.MethodDelete, fmt.Sprintf("/api/resume-profile/%d", profile.ID),
		"resume-user", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var experienceCount, skillCount int64
	dbCtx.DB.Model(&entities.WorkExperience{}).Count(&experienceCount)
	dbCtx.DB.Model(&entities.Skill{}).Count(&skillCount)
	assert.Equal(t, int64(0), experienceCount)
	assert.Equal(t, int64(0), skillCount)
}
