package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations,
// including the nested experience and education collections.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error

	AddExperience(ctx context.Context, exp *models.Experience) error
	SaveExperience(ctx context.Context, exp *models.Experience) error
	DeleteExperience(ctx context.Context, id uint) error

	AddEducation(ctx context.Context, edu *models.Education) error
	SaveEducation(ctx context.Context, edu *models.Education) error
	DeleteEducation(ctx context.Context, id uint) error
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withEntries preloads the owning user plus both entry lists newest-first.
// Entry ordering breaks created_at ties by id so same-instant inserts still
// come back most-recent-first.
func (r *profileRepository) withEntries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.created_at DESC, experiences.id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("educations.created_at DESC, educations.id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.withEntries(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		return r.withEntries(r.db.WithContext(ctx)).
			Order("profiles.created_at DESC").
			Find(&profiles).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

// DeleteByUserID removes the row outright, mirroring account deletion. The
// unique user_id index must not stay occupied by a soft-deleted profile.
// Entry rows hold foreign keys to the profile, so they go first in the same
// transaction or the profile delete fails on Postgres.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Select("id").Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Profile{}, profile.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) SaveExperience(ctx context.Context, exp *models.Experience) error {
	if err := r.db.WithContext(ctx).Save(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Experience{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) SaveEducation(ctx context.Context, edu *models.Education) error {
	if err := r.db.WithContext(ctx).Save(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) DeleteEducation(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Education{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}
