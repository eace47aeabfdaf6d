package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/applyflow/applyflow/internal/api"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/metrics"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/applyflow/applyflow/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	if cfg.Jobs.SeedSampleData {
		if err = dbContext.SeedListings(); err != nil {
			log.Fatalf("can't seed job listings: %v", err)
		}
	}

	users := repositories.NewCachedUsers(repositories.NewUsersRepository(dbContext.DB))
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	listings := repositories.NewListingsRepository(dbContext.DB)
	resumes := repositories.NewResumesRepository(dbContext.DB)
	preferences := repositories.NewPreferencesRepository(dbContext.DB)

	bus := EventBus.New()

	notifier, err := services.NewNotifier(bus, preferences)
	if err != nil {
		log.Fatalf("can't create notifier: %v", err)
	}
	defer notifier.Stop()

	cleaner, err := services.NewListingsCleaner(listings, cfg.Jobs.ListingRetentionDays)
	if err != nil {
		log.Fatalf("can't create listings cleaner: %v", err)
	}
	defer cleaner.Stop()

	stats := services.NewStatsService(applications, preferences)

	server, err := api.NewServer(api.Options{
		Port:               cfg.Server.Port,
		JWTSecret:          cfg.Auth.JWTSecret,
		RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
		RateLimitBurst:     cfg.Server.RateLimitBurst,
	}, api.Repositories{
		Users:        users,
		Applications: applications,
		Listings:     listings,
		Resumes:      resumes,
		Preferences:  preferences,
	}, stats, bus)
	if err != nil {
		log.Fatalf("can't create API server: %v", err)
	}

	if err = server.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}

	log.Info("Server stopped.")
}
