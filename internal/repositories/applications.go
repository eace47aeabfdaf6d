package repositories

import (
	"context"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListingSummary is the slice of a job listing that gets embedded in an
// application row for display.
type ListingSummary struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	SalaryMin *int   `json:"salaryMin"`
	SalaryMax *int   `json:"salaryMax"`
}

// ApplicationWithListing joins an application to its listing. JobListing
// is nil when the application was tracked manually or the listing has
// since been removed.
type ApplicationWithListing struct {
	entities.Application
	JobListing *ListingSummary `json:"jobListing"`
}

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// ListByUser returns one page of the user's applications ordered by
// applied date descending, each joined to its listing summary, plus the
// total count for the same conditions. An empty status means no status
// filter.
func (repo *Applications) ListByUser(ctx context.Context, userID string, page, limit int, status entities.ApplicationStatus) ([]ApplicationWithListing, int64, error) {
	query := repo.db.WithContext(ctx).Model(&entities.Application{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []entities.Application
	err := query.
		Order("applied_date desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	listingIDs := lo.Uniq(lo.FilterMap(apps, func(a entities.Application, _ int) (int, bool) {
		if a.JobListingID == nil {
			return 0, false
		}
		return *a.JobListingID, true
	}))

	var listings []entities.JobListing
	if len(listingIDs) > 0 {
		if err := repo.db.WithContext(ctx).Find(&listings, listingIDs).Error; err != nil {
			return nil, 0, err
		}
	}
	byID := lo.KeyBy(listings, func(l entities.JobListing) int { return l.ID })

	rows := lo.Map(apps, func(a entities.Application, _ int) ApplicationWithListing {
		row := ApplicationWithListing{Application: a}
		if a.JobListingID != nil {
			if listing, ok := byID[*a.JobListingID]; ok {
				row.JobListing = &ListingSummary{
					ID:        listing.ID,
					Title:     listing.Title,
					Company:   listing.Company,
					Location:  listing.Location,
					SalaryMin: listing.SalaryMin,
					SalaryMax: listing.SalaryMax,
				}
			}
		}
		return row
	})

	return rows, total, nil
}

func (repo *Applications) GetByID(ctx context.Context, id int, userID string) (*entities.Application, error) {
	var app entities.Application
	err := repo.db.WithContext(ctx).First(&app, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// CountByStatus groups the user's applications by status. Statuses with
// no rows are simply absent from the map.
func (repo *Applications) CountByStatus(ctx context.Context, userID string) (map[entities.ApplicationStatus]int64, error) {
	var rows []struct {
		Status entities.ApplicationStatus
		Count  int64
	}
	err := repo.db.WithContext(ctx).
		Model(&entities.Application{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (repo *Applications) CountAppliedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&entities.Application{}).
		Where("user_id = ? AND applied_date >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// Create inserts the application, defaulting status to applied and the
// applied date to now when the caller leaves them unset.
func (repo *Applications) Create(ctx context.Context, app *entities.Application) error {
	if app.Status == "" {
		app.Status = entities.StatusApplied
	}
	if app.AppliedDate.IsZero() {
		app.AppliedDate = time.Now()
	}
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error
}

// Update applies a partial change set scoped by (id, userID) and bumps
// updated_at. Returns ErrNotFound when the pair matches no row, so a
// cross-user update is indistinguishable from a missing one.
func (repo *Applications) Update(ctx context.Context, id int, userID string, changes map[string]any) (*entities.Application, error) {
	changes["updated_at"] = time.Now()
	res := repo.db.WithContext(ctx).
		Model(&entities.Application{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var app entities.Application
	if err := repo.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (repo *Applications) Delete(ctx context.Context, id int, userID string) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
