package services

import (
	"context"
	"testing"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/applyflow/applyflow/internal/repositories"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockApplicationCounts struct {
	mock.Mock
}

func (m *mockApplicationCounts) CountByStatus(ctx context.Context, userID string) (map[entities.ApplicationStatus]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(map[entities.ApplicationStatus]int64), args.Error(1)
}

func (m *mockApplicationCounts) CountAppliedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockPreferences struct {
	mock.Mock
}

func (m *mockPreferences) GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserPreferences), args.Error(1)
}

func Test_Stats_EmptyUserHasZeroRate(t *testing.T) {

	counts := &mockApplicationCounts{}
	counts.On("CountByStatus", mock.Anything, "user-1").
		Return(map[entities.ApplicationStatus]int64{}, nil)
	counts.On("CountAppliedSince", mock.Anything, "user-1", mock.Anything).
		Return(int64(0), nil)

	prefs := &mockPreferences{}
	prefs.On("GetByUser", mock.Anything, "user-1").Return(nil, repositories.ErrNotFound)

	stats, err := NewStatsService(counts, prefs).Summary(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, 0.0, stats.ResponseRate)
	assert.Equal(t, entities.DefaultWeeklyGoal, stats.WeeklyGoal)
}

func Test_Stats_CountsAndResponseRate(t *testing.T) {

	counts := &mockApplicationCounts{}
	counts.On("CountByStatus", mock.Anything, "user-1").
		Return(map[entities.ApplicationStatus]int64{
			entities.StatusApplied:   4,
			entities.StatusInterview: 2,
			entities.StatusOffer:     1,
			entities.StatusRejected:  3,
		}, nil)
	counts.On("CountAppliedSince", mock.Anything, "user-1", mock.Anything).
		Return(int64(5), nil)

	prefs := &mockPreferences{}
	prefs.On("GetByUser", mock.Anything, "user-1").Return(nil, repositories.ErrNotFound)

	stats, err := NewStatsService(counts, prefs).Summary(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(2), stats.Interviews)
	assert.Equal(t, int64(1), stats.Offers)
	assert.Equal(t, int64(3), stats.Rejected)
	assert.Equal(t, int64(4), stats.Pending)
	assert.Equal(t, int64(5), stats.ThisWeek)
	assert.Equal(t, int64(5), stats.WeeklyProgress)
	assert.Equal(t, 30.0, stats.ResponseRate)
}

func Test_Stats_ResponseRateRoundsToOneDecimal(t *testing.T) {

	counts := &mockApplicationCounts{}
	counts.On("CountByStatus", mock.Anything, "user-1").
		Return(map[entities.ApplicationStatus]int64{
			entities.StatusApplied:   2,
			entities.StatusInterview: 1,
		}, nil)
	counts.On("CountAppliedSince", mock.Anything, "user-1", mock.Anything).
		Return(int64(0), nil)

	prefs := &mockPreferences{}
	prefs.On("GetByUser", mock.Anything, "user-1").Return(nil, repositories.ErrNotFound)

	stats, err := NewStatsService(counts, prefs).Summary(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 33.3, stats.ResponseRate)
}

func Test_Stats_WeeklyGoalComesFromPreferences(t *testing.T) {

	counts := &mockApplicationCounts{}
	counts.On("CountByStatus", mock.Anything, "user-1").
		Return(map[entities.ApplicationStatus]int64{}, nil)
	counts.On("CountAppliedSince", mock.Anything, "user-1", mock.Anything).
		Return(int64(0), nil)

	prefs := &mockPreferences{}
	prefs.On("GetByUser", mock.Anything, "user-1").
		Return(&entities.UserPreferences{UserID: "user-1", WeeklyGoal: 35}, nil)

	stats, err := NewStatsService(counts, prefs).Summary(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 35, stats.WeeklyGoal)
}

func Test_Stats_WeeklyGoalFallsBackWhenPreferencesFail(t *testing.T) {

	counts := &mockApplicationCounts{}
	counts.On("CountByStatus", mock.Anything, "user-1").
		Return(map[entities.ApplicationStatus]int64{}, nil)
	counts.On("CountAppliedSince", mock.Anything, "user-1", mock.Anything).
		Return(int64(0), nil)

	prefs := &mockPreferences{}
	prefs.On("GetByUser", mock.Anything, "user-1").Return(nil, errors.New("db is down"))

	stats, err := NewStatsService(counts, prefs).Summary(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, entities.DefaultWeeklyGoal, stats.WeeklyGoal)
}

func Test_Stats_CountErrorIsPropagated(t *testing.T) {

	counts := &mockApplicationCounts{}
	counts.On("CountByStatus", mock.Anything, "user-1").
		Return(map[entities.ApplicationStatus]int64(nil), errors.New("db is down"))

	prefs := &mockPreferences{}

	_, err := NewStatsService(counts, prefs).Summary(context.Background(), "user-1")

	assert.Error(t, err)
}
