package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockListingCleanup struct {
	cutoffs []time.Time
}

func (m *mockListingCleanup) RemoveOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.cutoffs = append(m.cutoffs, cutoff)
	return 0, nil
}

func Test_ListingsCleaner_RejectsInvalidRetention(t *testing.T) {

	_, err := NewListingsCleaner(&mockListingCleanup{}, 0)
	assert.Error(t, err)

	_, err = NewListingsCleaner(&mockListingCleanup{}, -5)
	assert.Error(t, err)
}

func Test_ListingsCleaner_PruneUsesRetentionCutoff(t *testing.T) {

	repo := &mockListingCleanup{}
	cleaner, err := NewListingsCleaner(repo, 30)
	assert.NoError(t, err)
	defer cleaner.Stop()

	cleaner.pruneStaleListings()

	assert.Len(t, repo.cutoffs, 1)
	expected := time.Now().AddDate(0, 0, -30)
	assert.WithinDuration(t, expected, repo.cutoffs[0], time.Minute)
}
