package entities

import (
	"errors"
	"time"
)

type WorkType string

const (
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
	WorkOnsite WorkType = "onsite"
	WorkAny    WorkType = "any"
)

func ToWorkType(s string) (WorkType, error) {
	switch s {
	case string(WorkRemote):
		return WorkRemote, nil
	case string(WorkHybrid):
		return WorkHybrid, nil
	case string(WorkOnsite):
		return WorkOnsite, nil
	case string(WorkAny):
		return WorkAny, nil
	default:
		return "", errors.New("invalid work type")
	}
}

// Defaults applied when preferences are created without explicit values.
const (
	DefaultDailyGoal   = 5
	DefaultWeeklyGoal  = 20
	DefaultMonthlyGoal = 80
)

// UserPreferences holds job search targeting and goal/notification
// settings. One row per user.
type UserPreferences struct {
	ID                int       `gorm:"primaryKey" json:"id"`
	UserID            string    `gorm:"uniqueIndex;not null" json:"userId"`
	User              User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	JobTitle          string    `json:"jobTitle"`
	PreferredLocation string    `json:"preferredLocation"`
	MinSalary         *int      `json:"minSalary"`
	WorkType          WorkType  `json:"workType"`
	DailyGoal         int       `json:"dailyGoal"`
	WeeklyGoal        int       `json:"weeklyGoal"`
	MonthlyGoal       int       `json:"monthlyGoal"`
	EmailSummary      bool      `json:"emailSummary"`
	JobAlerts         bool      `json:"jobAlerts"`
	Reminders         bool      `json:"reminders"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
