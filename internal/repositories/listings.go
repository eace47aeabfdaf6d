package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListingFilter carries the optional search conditions for job listings.
// All provided conditions combine with AND.
//
// SalaryMin bounds the listing's own salary_min from below and SalaryMax
// bounds the listing's salary_max from above. These are two independent
// tests, not an overlapping-range check; the search UX was built around
// that behavior and it is preserved here.
type ListingFilter struct {
	Search    string
	Location  string
	SalaryMin *int
	SalaryMax *int
	Remote    bool
}

type Listings struct {
	db *gorm.DB
}

func NewListingsRepository(db *gorm.DB) *Listings {
	return &Listings{db: db}
}

// Search returns one page of listings matching the filter, newest first,
// together with the total match count.
func (repo *Listings) Search(ctx context.Context, filter ListingFilter, page, limit int) ([]entities.JobListing, int64, error) {
	query := repo.db.WithContext(ctx).Model(&entities.JobListing{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"lower(title) LIKE ? OR lower(company) LIKE ? OR lower(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Location != "" {
		query = query.Where("lower(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.SalaryMin != nil {
		query = query.Where("salary_min >= ?", *filter.SalaryMin)
	}
	if filter.SalaryMax != nil {
		query = query.Where("salary_max <= ?", *filter.SalaryMax)
	}
	if filter.Remote {
		query = query.Where("remote = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []entities.JobListing
	err := query.
		Order("posted desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (repo *Listings) GetByID(ctx context.Context, id int) (*entities.JobListing, error) {
	var listing entities.JobListing
	err := repo.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (repo *Listings) GetByIDs(ctx context.Context, ids []int) ([]entities.JobListing, error) {
	var listings []entities.JobListing
	if len(ids) == 0 {
		return listings, nil
	}
	if err := repo.db.WithContext(ctx).Find(&listings, ids).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (repo *Listings) Create(ctx context.Context, listing *entities.JobListing) error {
	if listing.Posted.IsZero() {
		listing.Posted = time.Now()
	}
	return repo.db.WithContext(ctx).Create(listing).Error
}

// RemoveOlderThan deletes listings posted before the cutoff. Applications
// referencing them survive with job_listing_id set to NULL.
func (repo *Listings) RemoveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.JobListing{}, "posted < ?", cutoff)
	return res.RowsAffected, res.Error
}
