package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository handles persistence for profiles and their experience and
// education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Save(ctx context.Context, profile *models.Profile) error
	AddExperience(ctx context.Context, exp *models.Experience) error
	AddEducation(ctx context.Context, edu *models.Education) error
	DeleteExperience(ctx context.Context, profileID, expID uint) (int64, error)
	DeleteEducation(ctx context.Context, profileID, eduID uint) (int64, error)
	DeleteWithUser(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withAssociations preloads the owner (public columns only) and the child
// collections, newest entries first.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	defer middleware.TrackQuery("select", "profiles")()

	var profile models.Profile
	err := withAssociations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	defer middleware.TrackQuery("select", "profiles")()

	var profile models.Profile
	err := withAssociations(r.db.WithContext(ctx)).
		Where("handle = ?", handle).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	defer middleware.TrackQuery("select", "profiles")()

	var profiles []models.Profile
	err := withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Create inserts a new profile. The unique index on handle decides handle
// conflicts atomically, so two concurrent claims of the same handle cannot
// both succeed.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	defer middleware.TrackQuery("insert", "profiles")()

	if err := r.db.WithContext(ctx).Omit("User").Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("handle", "Handle already exists")
		}
		return err
	}
	return nil
}

// Save updates an existing profile in place.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	defer middleware.TrackQuery("update", "profiles")()

	err := r.db.WithContext(ctx).
		Omit("User", "Experience", "Education").
		Save(profile).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("handle", "Handle already exists")
		}
		return err
	}
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	defer middleware.TrackQuery("insert", "experiences")()

	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return err
	}
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	defer middleware.TrackQuery("insert", "educations")()

	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return err
	}
	return nil
}

// DeleteExperience removes one entry scoped to the profile and reports how
// many rows matched.
func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, expID uint) (int64, error) {
	defer middleware.TrackQuery("delete", "experiences")()

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profileID).
		Delete(&models.Experience{})
	return res.RowsAffected, res.Error
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profileID, eduID uint) (int64, error) {
	defer middleware.TrackQuery("delete", "educations")()

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profileID).
		Delete(&models.Education{})
	return res.RowsAffected, res.Error
}

// DeleteWithUser removes the user, their profile with its entries, and their
// posts in a single transaction. Either everything goes or nothing does.
func (r *profileRepository) DeleteWithUser(ctx context.Context, userID uint) error {
	defer middleware.TrackQuery("delete", "users")()

	var postIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return err
	}

	// Every deleted post may still sit in the cache under its own key.
	for _, id := range postIDs {
		cache.InvalidatePost(ctx, id)
	}
	return nil
}
