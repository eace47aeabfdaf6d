package entities

import "time"

// JobListing is immutable once created: listings come from seeding or an
// external scraper, and there is no update path through the API.
type JobListing struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Company      string    `gorm:"not null" json:"company"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	SalaryMin    *int      `json:"salaryMin"`
	SalaryMax    *int      `json:"salaryMax"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Benefits     string    `json:"benefits"`
	Remote       bool      `json:"remote"`
	Posted       time.Time `gorm:"index" json:"posted"`
	ExternalID   string    `json:"externalId"`
	SourceURL    string    `json:"sourceUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
