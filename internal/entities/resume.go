package entities

import (
	"errors"
	"time"
)

// ResumeProfile is the user's master resume. One per user, enforced by
// the unique index on user_id.
type ResumeProfile struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"userId"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkExperience struct {
	ID              int           `gorm:"primaryKey" json:"id"`
	ResumeProfileID int           `gorm:"index;not null" json:"resumeProfileId"`
	ResumeProfile   ResumeProfile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title           string        `gorm:"not null" json:"title"`
	Company         string        `gorm:"not null" json:"company"`
	StartDate       time.Time     `gorm:"not null" json:"startDate"`
	EndDate         *time.Time    `json:"endDate"` // nil means current position
	Description     string        `json:"description"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type SkillCategory string

const (
	SkillTechnical     SkillCategory = "technical"
	SkillSoft          SkillCategory = "soft"
	SkillCertification SkillCategory = "certification"
)

func ToSkillCategory(s string) (SkillCategory, error) {
	switch s {
	case string(SkillTechnical):
		return SkillTechnical, nil
	case string(SkillSoft):
		return SkillSoft, nil
	case string(SkillCertification):
		return SkillCertification, nil
	default:
		return "", errors.New("invalid skill category")
	}
}

type Skill struct {
	ID              int           `gorm:"primaryKey" json:"id"`
	ResumeProfileID int           `gorm:"index;not null" json:"resumeProfileId"`
	ResumeProfile   ResumeProfile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name            string        `gorm:"not null" json:"name"`
	Category        SkillCategory `gorm:"not null" json:"category"`
	CreatedAt       time.Time     `json:"createdAt"`
}
