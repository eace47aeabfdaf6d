package services

import (
	"context"
	"time"

	"github.com/applyflow/applyflow/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type listingCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ListingsCleaner prunes job listings past the retention window every
// night. Applications that referenced a pruned listing keep their row
// with the reference nulled out.
type ListingsCleaner struct {
	listings      listingCleanupRepository
	cron          *cron.Cron
	retentionDays int
}

func NewListingsCleaner(listings listingCleanupRepository, retentionDays int) (*ListingsCleaner, error) {

	if retentionDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	lc := &ListingsCleaner{
		listings:      listings,
		cron:          cron.New(),
		retentionDays: retentionDays,
	}

	_, err := lc.cron.AddFunc("0 3 * * *", lc.pruneStaleListings)
	if err != nil {
		return nil, err
	}

	lc.cron.Start()
	log.Infof("listings cleaner started, retention in days: %d", lc.retentionDays)
	return lc, nil
}

func (lc *ListingsCleaner) Stop() {
	lc.cron.Stop()
}

func (lc *ListingsCleaner) pruneStaleListings() {
	cutoff := time.Now().AddDate(0, 0, -lc.retentionDays)
	rowsAffected, err := lc.listings.RemoveOlderThan(context.Background(), cutoff)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to prune stale listings: %v", err)
	} else {
		log.Infof("stale listings pruned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
