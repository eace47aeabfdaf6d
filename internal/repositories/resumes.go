package repositories

import (
	"context"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resumes covers the resume aggregate: the profile plus its work
// experiences and skills. Child mutations are scoped by the owning
// profile id, mirroring the (id, userId) pattern on applications.
type Resumes struct {
	db *gorm.DB
}

func NewResumesRepository(db *gorm.DB) *Resumes {
	return &Resumes{db: db}
}

func (repo *Resumes) GetProfileByUser(ctx context.Context, userID string) (*entities.ResumeProfile, error) {
	var profile entities.ResumeProfile
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (repo *Resumes) CreateProfile(ctx context.Context, profile *entities.ResumeProfile) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (repo *Resumes) UpdateProfile(ctx context.Context, id int, userID string, changes map[string]any) (*entities.ResumeProfile, error) {
	changes["updated_at"] = time.Now()
	res := repo.db.WithContext(ctx).
		Model(&entities.ResumeProfile{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var profile entities.ResumeProfile
	if err := repo.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (repo *Resumes) DeleteProfile(ctx context.Context, id int, userID string) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.ResumeProfile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Resumes) GetExperiences(ctx context.Context, profileID int) ([]entities.WorkExperience, error) {
	var experiences []entities.WorkExperience
	err := repo.db.WithContext(ctx).
		Where("resume_profile_id = ?", profileID).
		Order("start_date desc").
		Find(&experiences).Error
	if err != nil {
		return nil, err
	}
	return experiences, nil
}

func (repo *Resumes) CreateExperience(ctx context.Context, experience *entities.WorkExperience) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(experience).Error
}

func (repo *Resumes) UpdateExperience(ctx context.Context, id, profileID int, changes map[string]any) (*entities.WorkExperience, error) {
	res := repo.db.WithContext(ctx).
		Model(&entities.WorkExperience{}).
		Where("id = ? AND resume_profile_id = ?", id, profileID).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var experience entities.WorkExperience
	if err := repo.db.WithContext(ctx).First(&experience, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

func (repo *Resumes) DeleteExperience(ctx context.Context, id, profileID int) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND resume_profile_id = ?", id, profileID).
		Delete(&entities.WorkExperience{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Resumes) GetSkills(ctx context.Context, profileID int) ([]entities.Skill, error) {
	var skills []entities.Skill
	err := repo.db.WithContext(ctx).
		Where("resume_profile_id = ?", profileID).
		Order("category, name").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (repo *Resumes) CreateSkill(ctx context.Context, skill *entities.Skill) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(skill).Error
}

func (repo *Resumes) DeleteSkill(ctx context.Context, id, profileID int) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND resume_profile_id = ?", id, profileID).
		Delete(&entities.Skill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
