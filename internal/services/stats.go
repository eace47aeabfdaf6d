package services

import (
	"context"
	"math"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type applicationCountsRepository interface {
	CountByStatus(ctx context.Context, userID string) (map[entities.ApplicationStatus]int64, error)
	CountAppliedSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type goalPreferencesRepository interface {
	GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error)
}

// ApplicationStats is the per-user dashboard summary. WeeklyProgress
// duplicates ThisWeek: both report applications submitted in the
// trailing seven days.
type ApplicationStats struct {
	Total          int64   `json:"total"`
	ThisWeek       int64   `json:"thisWeek"`
	Interviews     int64   `json:"interviews"`
	Offers         int64   `json:"offers"`
	Rejected       int64   `json:"rejected"`
	Pending        int64   `json:"pending"`
	ResponseRate   float64 `json:"responseRate"`
	WeeklyGoal     int     `json:"weeklyGoal"`
	WeeklyProgress int64   `json:"weeklyProgress"`
}

// StatsService computes application statistics on demand. Results are
// never cached; the two underlying queries run independently, so counts
// are accurate as of each query's own instant.
type StatsService struct {
	applications applicationCountsRepository
	preferences  goalPreferencesRepository
}

func NewStatsService(applications applicationCountsRepository, preferences goalPreferencesRepository) *StatsService {
	return &StatsService{applications: applications, preferences: preferences}
}

func (s *StatsService) Summary(ctx context.Context, userID string) (*ApplicationStats, error) {

	counts, err := s.applications.CountByStatus(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count applications by status")
	}

	thisWeek, err := s.applications.CountAppliedSince(ctx, userID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, errors.Wrap(err, "failed to count this week's applications")
	}

	total := lo.Sum(lo.Values(counts))
	interviews := counts[entities.StatusInterview]
	offers := counts[entities.StatusOffer]

	responseRate := 0.0
	if total > 0 {
		responseRate = math.Round(float64(interviews+offers)/float64(total)*1000) / 10
	}

	return &ApplicationStats{
		Total:          total,
		ThisWeek:       thisWeek,
		Interviews:     interviews,
		Offers:         offers,
		Rejected:       counts[entities.StatusRejected],
		Pending:        counts[entities.StatusApplied],
		ResponseRate:   responseRate,
		WeeklyGoal:     s.weeklyGoal(ctx, userID),
		WeeklyProgress: thisWeek,
	}, nil
}

// weeklyGoal reads the user's configured goal, falling back to the
// documented default when preferences are missing or unset.
func (s *StatsService) weeklyGoal(ctx context.Context, userID string) int {
	prefs, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to get preferences for weekly goal: %v", err)
		}
		return entities.DefaultWeeklyGoal
	}
	if prefs.WeeklyGoal <= 0 {
		return entities.DefaultWeeklyGoal
	}
	return prefs.WeeklyGoal
}
