package repositories

import (
	"context"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Preferences struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *Preferences {
	return &Preferences{db: db}
}

func (repo *Preferences) GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	var prefs entities.UserPreferences
	err := repo.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (repo *Preferences) Create(ctx context.Context, prefs *entities.UserPreferences) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(prefs).Error
}

func (repo *Preferences) Update(ctx context.Context, userID string, changes map[string]any) (*entities.UserPreferences, error) {
	changes["updated_at"] = time.Now()
	res := repo.db.WithContext(ctx).
		Model(&entities.UserPreferences{}).
		Where("user_id = ?", userID).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return repo.GetByUser(ctx, userID)
}
