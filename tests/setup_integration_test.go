package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/applyflow/applyflow/internal/api"
	"github.com/applyflow/applyflow/internal/auth"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/applyflow/applyflow/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

var (
	dbCtx        *repositories.DbContext
	testServer   *httptest.Server
	jwtSecret    string
	applications *repositories.Applications
	listings     *repositories.Listings
	resumes      *repositories.Resumes
	preferences  *repositories.Preferences
)

func upEnvironment() {

	os.Setenv("DB_CONNECTION_STRING", "testdatabase.db")
	cfg := config.Get()
	jwtSecret = cfg.Auth.JWTSecret

	var err error
	dbCtx, err = repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("could not create db context: %s", err)
	}

	err = dbCtx.Migrate()
	if err != nil {
		log.Fatalf("could not migrate db: %s", err)
	}

	users := repositories.NewCachedUsers(repositories.NewUsersRepository(dbCtx.DB))
	applications = repositories.NewApplicationsRepository(dbCtx.DB)
	listings = repositories.NewListingsRepository(dbCtx.DB)
	resumes = repositories.NewResumesRepository(dbCtx.DB)
	preferences = repositories.NewPreferencesRepository(dbCtx.DB)

	bus := EventBus.New()
	stats := services.NewStatsService(applications, preferences)

	server, err := api.NewServer(api.Options{
		Port:               0,
		JWTSecret:          jwtSecret,
		RateLimitPerSecond: 10000,
		RateLimitBurst:     10000,
	}, api.Repositories{
		Users:        users,
		Applications: applications,
		Listings:     listings,
		Resumes:      resumes,
		Preferences:  preferences,
	}, stats, bus)
	if err != nil {
		log.Fatalf("could not create api server: %s", err)
	}

	testServer = httptest.NewServer(server.Handler())
}

func downEnvironment() {
	testServer.Close()
	_ = dbCtx.Close()
	_ = os.Remove("testdatabase.db")
}

func TestMain(m *testing.M) {

	err := os.Chdir("../") //project root to resolve correctly relative paths in code
	if err != nil {
		log.Fatal(err)
	}

	upEnvironment()

	code := m.Run()

	downEnvironment()

	os.Exit(code)
}

func tokenFor(userID string) string {
	token, err := auth.GenerateToken(jwtSecret, auth.Claims{
		UserID: userID,
		Email:  userID + "@example.com",
	}, time.Hour)
	if err != nil {
		log.Fatalf("could not generate token: %s", err)
	}
	return token
}

// doRequest performs an authenticated JSON request against the test
// server. An empty userID sends the request unauthenticated.
func doRequest(t *testing.T, method, path, userID string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal body: %s", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reader)
	if err != nil {
		t.Fatalf("could not create request: %s", err)
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(userID))
	}

	resp, err := testServer.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("could not read response: %s", err)
	}
	return resp, raw
}
