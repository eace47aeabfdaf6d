package repositories

import (
	"fmt"
	"strings"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	// Referential actions (cascade, set-null) only fire with the
	// foreign_keys pragma enabled on every connection.
	if !strings.Contains(connectionString, "_pragma") {
		connectionString += "?_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	for _, model := range []any{
		entities.User{},
		entities.ResumeProfile{},
		entities.WorkExperience{},
		entities.Skill{},
		entities.JobListing{},
		entities.Application{},
		entities.UserPreferences{},
	} {
		if err := c.DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// SeedListings inserts the bundled sample listings when the job_listings
// table is empty, so a fresh install has something to browse.
func (c *DbContext) SeedListings() error {
	var count int64
	if err := c.DB.Model(entities.JobListing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count job listings: %w", err)
	}
	if count > 0 {
		return nil
	}

	listings := sampleListings()
	if err := c.DB.Create(&listings).Error; err != nil {
		return fmt.Errorf("failed to seed job listings: %w", err)
	}
	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
