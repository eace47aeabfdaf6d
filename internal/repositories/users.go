package repositories

import (
	"context"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := repo.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Upsert creates the user row or refreshes its identity fields. Driven by
// token claims on authenticated traffic, so the row always reflects the
// identity provider's latest view.
func (repo *Users) Upsert(ctx context.Context, user entities.User) error {
	user.UpdatedAt = time.Now()
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url", "updated_at",
		}),
	}).Create(&user).Error
}
