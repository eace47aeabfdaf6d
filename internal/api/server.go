package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/metrics"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/applyflow/applyflow/internal/services"
	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var validate = validator.New()

type Options struct {
	Port               int
	JWTSecret          string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type userRepository interface {
	Ensure(ctx context.Context, user entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

type applicationRepository interface {
	ListByUser(ctx context.Context, userID string, page, limit int, status entities.ApplicationStatus) ([]repositories.ApplicationWithListing, int64, error)
	GetByID(ctx context.Context, id int, userID string) (*entities.Application, error)
	Create(ctx context.Context, app *entities.Application) error
	Update(ctx context.Context, id int, userID string, changes map[string]any) (*entities.Application, error)
	Delete(ctx context.Context, id int, userID string) error
}

type listingRepository interface {
	Search(ctx context.Context, filter repositories.ListingFilter, page, limit int) ([]entities.JobListing, int64, error)
	GetByID(ctx context.Context, id int) (*entities.JobListing, error)
}

type resumeRepository interface {
	GetProfileByUser(ctx context.Context, userID string) (*entities.ResumeProfile, error)
	CreateProfile(ctx context.Context, profile *entities.ResumeProfile) error
	UpdateProfile(ctx context.Context, id int, userID string, changes map[string]any) (*entities.ResumeProfile, error)
	DeleteProfile(ctx context.Context, id int, userID string) error
	GetExperiences(ctx context.Context, profileID int) ([]entities.WorkExperience, error)
	CreateExperience(ctx context.Context, experience *entities.WorkExperience) error
	UpdateExperience(ctx context.Context, id, profileID int, changes map[string]any) (*entities.WorkExperience, error)
	DeleteExperience(ctx context.Context, id, profileID int) error
	GetSkills(ctx context.Context, profileID int) ([]entities.Skill, error)
	CreateSkill(ctx context.Context, skill *entities.Skill) error
	DeleteSkill(ctx context.Context, id, profileID int) error
}

type preferencesRepository interface {
	GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error)
	Create(ctx context.Context, prefs *entities.UserPreferences) error
	Update(ctx context.Context, userID string, changes map[string]any) (*entities.UserPreferences, error)
}

type statsProvider interface {
	Summary(ctx context.Context, userID string) (*services.ApplicationStats, error)
}

type Repositories struct {
	Users        userRepository
	Applications applicationRepository
	Listings     listingRepository
	Resumes      resumeRepository
	Preferences  preferencesRepository
}

type Server struct {
	opts    Options
	repos   Repositories
	stats   statsProvider
	bus     EventBus.Bus
	limiter *ipRateLimiter
}

func NewServer(opts Options, repos Repositories, stats statsProvider, bus EventBus.Bus) (*Server, error) {

	if opts.JWTSecret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if stats == nil {
		return nil, errors.New("stats provider is nil")
	}

	if repos.Users == nil || repos.Applications == nil || repos.Listings == nil ||
		repos.Resumes == nil || repos.Preferences == nil {
		return nil, errors.New("all repositories must be provided")
	}

	if opts.RateLimitPerSecond <= 0 {
		opts.RateLimitPerSecond = 20
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 40
	}

	return &Server{
		opts:    opts,
		repos:   repos,
		stats:   stats,
		bus:     bus,
		limiter: newIPRateLimiter(opts.RateLimitPerSecond, opts.RateLimitBurst),
	}, nil
}

// Handler assembles the route table. Job listing reads are public; every
// other route requires an authenticated identity.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/auth/user", s.withAuth(s.getCurrentUser))

	mux.HandleFunc("GET /api/jobs", s.listJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.getJob)

	mux.HandleFunc("GET /api/applications", s.withAuth(s.listApplications))
	mux.HandleFunc("GET /api/applications/stats", s.withAuth(s.getApplicationStats))
	mux.HandleFunc("POST /api/applications", s.withAuth(s.createApplication))
	mux.HandleFunc("PUT /api/applications/{id}", s.withAuth(s.updateApplication))
	mux.HandleFunc("DELETE /api/applications/{id}", s.withAuth(s.deleteApplication))
	mux.HandleFunc("POST /api/quick-apply", s.withAuth(s.quickApply))

	mux.HandleFunc("GET /api/resume-profile", s.withAuth(s.getResumeProfile))
	mux.HandleFunc("POST /api/resume-profile", s.withAuth(s.createResumeProfile))
	mux.HandleFunc("PUT /api/resume-profile/{id}", s.withAuth(s.updateResumeProfile))
	mux.HandleFunc("DELETE /api/resume-profile/{id}", s.withAuth(s.deleteResumeProfile))

	mux.HandleFunc("GET /api/work-experience/{profileId}", s.withAuth(s.listExperiences))
	mux.HandleFunc("POST /api/work-experience", s.withAuth(s.createExperience))
	mux.HandleFunc("PUT /api/work-experience/{id}", s.withAuth(s.updateExperience))
	mux.HandleFunc("DELETE /api/work-experience/{id}", s.withAuth(s.deleteExperience))

	mux.HandleFunc("GET /api/skills/{profileId}", s.withAuth(s.listSkills))
	mux.HandleFunc("POST /api/skills", s.withAuth(s.createSkill))
	mux.HandleFunc("DELETE /api/skills/{id}", s.withAuth(s.deleteSkill))

	mux.HandleFunc("GET /api/preferences", s.withAuth(s.getPreferences))
	mux.HandleFunc("POST /api/preferences", s.withAuth(s.createPreferences))
	mux.HandleFunc("PUT /api/preferences", s.withAuth(s.updatePreferences))

	return s.withRateLimit(withObservability(withRecovery(mux)))
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.opts.Port),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("API server listening on :%d", s.opts.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
