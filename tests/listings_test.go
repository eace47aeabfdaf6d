package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/stretchr/testify/assert"
)

type pagedListings struct {
	Data  []entities.JobListing `json:"data"`
	Total int64                 `json:"total"`
}

func seedListing(t *testing.T, listing entities.JobListing) *entities.JobListing {
	t.Helper()
	if listing.Posted.IsZero() {
		listing.Posted = time.Now()
	}
	if err := listings.Create(context.Background(), &listing); err != nil {
		t.Fatalf("could not create listing: %s", err)
	}
	return &listing
}

func Test_Jobs_GetByIDIsPublic(t *testing.T) {

	defer clearDb()

	listing := seedListing(t, entities.JobListing{Title: "Platform Engineer", Company: "Initech"})

	resp, raw := doRequest(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d", listing.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched entities.JobListing
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, listing.Title, fetched.Title)

	resp, _ = doRequest(t, http.MethodGet, "/api/jobs/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_Jobs_SearchIsCaseInsensitive(t *testing.T) {

	defer clearDb()

	seedListing(t, entities.JobListing{Title: "Senior Golang Developer", Company: "Initech"})
	seedListing(t, entities.JobListing{Title: "Data Analyst", Company: "Hooli"})

	resp, raw := doRequest(t, http.MethodGet, "/api/jobs?search=gOLANg", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page pagedListings
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Senior Golang Developer", page.Data[0].Title)

	//company matches too
	resp, raw = doRequest(t, http.MethodGet, "/api/jobs?search=hooli", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.Total)
}

func Test_Jobs_RemoteFilter(t *testing.T) {

	defer clearDb()

	seedListing(t, entities.JobListing{Title: "Remote Backend", Company: "Acme", Remote: true})
	seedListing(t, entities.JobListing{Title: "Office Backend", Company: "Acme", Remote: false})

	resp, raw := doRequest(t, http.MethodGet, "/api/jobs?remote=true", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page pagedListings
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Remote Backend", page.Data[0].Title)

	//without the filter both listings come back
	resp, raw = doRequest(t, http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(2), page.Total)
}

func Test_Jobs_SalaryBoundsFilterListingRange(t *testing.T) {

	defer clearDb()

	seedListing(t, entities.JobListing{
		Title: "Backend Engineer", Company: "Acme",
		SalaryMin: intPtr(90000), SalaryMax: intPtr(120000),
	})

	//listing minimum must be at or above the requested floor
	resp, raw := doRequest(t, http.MethodGet, "/api/jobs?salaryMin=80000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page pagedListings
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.Total)

	resp, raw = doRequest(t, http.MethodGet, "/api/jobs?salaryMin=100000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(0), page.Total)

	//listing maximum must be at or below the requested ceiling
	resp, raw = doRequest(t, http.MethodGet, "/api/jobs?salaryMax=100000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(0), page.Total)

	resp, raw = doRequest(t, http.MethodGet, "/api/jobs?salaryMax=130000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.Total)
}

func Test_Jobs_InvalidSalaryIsRejected(t *testing.T) {

	resp, _ := doRequest(t, http.MethodGet, "/api/jobs?salaryMin=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, "/api/jobs?salaryMax=12x", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_Jobs_PruningKeepsApplications(t *testing.T) {

	defer clearDb()

	listing := seedListing(t, entities.JobListing{
		Title: "Stale Role", Company: "Acme",
		Posted: time.Now().AddDate(0, 0, -90),
	})

	resp, raw := doRequest(t, http.MethodPost, "/api/quick-apply", "prune-user",
		map[string]any{"jobListingId": listing.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var app entities.Application
	assert.NoError(t, json.Unmarshal(raw, &app))

	removed, err := listings.RemoveOlderThan(context.Background(), time.Now().AddDate(0, 0, -60))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	//the application survives with its listing reference nulled
	var kept entities.Application
	assert.NoError(t, dbCtx.DB.First(&kept, "id = ?", app.ID).Error)
	assert.Nil(t, kept.JobListingID)
}
