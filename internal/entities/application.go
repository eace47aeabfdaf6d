package entities

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

// ToApplicationStatus parses a raw status value. The status set is fixed;
// anything else is rejected at the validation boundary.
func ToApplicationStatus(s string) (ApplicationStatus, error) {
	switch s {
	case string(StatusApplied):
		return StatusApplied, nil
	case string(StatusInterview):
		return StatusInterview, nil
	case string(StatusOffer):
		return StatusOffer, nil
	case string(StatusRejected):
		return StatusRejected, nil
	default:
		return "", errors.New("invalid application status")
	}
}

// Application records a user having applied to a listing. JobListingID is
// nullable: manually tracked applications have none, and the reference is
// set to NULL when a listing is pruned so the application survives.
type Application struct {
	ID            int               `gorm:"primaryKey" json:"id"`
	UserID        string            `gorm:"index;not null" json:"userId"`
	User          User              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	JobListingID  *int              `json:"jobListingId"`
	JobListing    *JobListing       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Status        ApplicationStatus `gorm:"not null" json:"status"`
	AppliedDate   time.Time         `gorm:"index" json:"appliedDate"`
	InterviewDate *time.Time        `json:"interviewDate"`
	FollowUpDate  *time.Time        `json:"followUpDate"`
	Notes         string            `json:"notes"`
	ResumeVersion string            `json:"resumeVersion"`
	CoverLetter   string            `json:"coverLetter"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
