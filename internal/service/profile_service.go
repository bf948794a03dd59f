// Package service contains the business logic between HTTP handlers and
// repositories. Services speak AppError; handlers translate to status codes.
package service

import (
	"context"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// ProfileService implements profile reads, the create-or-update upsert, the
// experience/education sub-collections, and full account deletion.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// GetOwn returns the caller's profile.
func (s *ProfileService) GetOwn(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("noProfile", "No profile found for the user")
	}
	return profile, nil
}

// GetByHandle returns the profile owning the given handle.
func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	profile, err := s.profiles.GetByHandle(ctx, handle)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("noProfile", "No profile found for the handle")
	}
	return profile, nil
}

// GetByUser returns the profile owned by the given user id.
func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("noProfile", "No profile found for the user id")
	}
	return profile, nil
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	profiles, err := s.profiles.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// UpsertInput carries the profile fields from the upsert request. Pointer
// fields distinguish "absent" from "set to empty": on update, nil fields keep
// their stored value.
type UpsertInput struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// applyUpsertInput copies the present fields of in onto profile. Skills is a
// comma-separated list in the request and a slice in storage.
func applyUpsertInput(profile *models.Profile, in UpsertInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setString(&profile.Handle, in.Handle)
	setString(&profile.Company, in.Company)
	setString(&profile.Website, in.Website)
	setString(&profile.Location, in.Location)
	setString(&profile.Bio, in.Bio)
	setString(&profile.Status, in.Status)
	setString(&profile.GithubUsername, in.GithubUsername)

	if in.Skills != nil {
		parts := strings.Split(*in.Skills, ",")
		skills := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				skills = append(skills, s)
			}
		}
		profile.Skills = skills
	}

	setString(&profile.Social.Youtube, in.Youtube)
	setString(&profile.Social.Twitter, in.Twitter)
	setString(&profile.Social.Facebook, in.Facebook)
	setString(&profile.Social.Linkedin, in.Linkedin)
	setString(&profile.Social.Instagram, in.Instagram)
}

// Upsert creates the caller's profile or updates the existing one. Handle
// uniqueness is enforced by the database, so a lost race comes back as a
// conflict instead of a duplicate row.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in UpsertInput) (*models.Profile, error) {
	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if existing == nil {
		profile := &models.Profile{UserID: userID}
		applyUpsertInput(profile, in)
		if err := s.profiles.Create(ctx, profile); err != nil {
			if appErr, ok := err.(*models.AppError); ok {
				return nil, appErr
			}
			return nil, models.NewInternalError(err)
		}
		return s.GetOwn(ctx, userID)
	}

	applyUpsertInput(existing, in)
	if err := s.profiles.Save(ctx, existing); err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return s.GetOwn(ctx, userID)
}

// AddExperience prepends a work-history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, exp models.Experience) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("profile", "This user has no profile")
	}

	exp.ProfileID = profile.ID
	if err := s.profiles.AddExperience(ctx, &exp); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetOwn(ctx, userID)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, edu models.Education) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("profile", "This user has no profile")
	}

	edu.ProfileID = profile.ID
	if err := s.profiles.AddEducation(ctx, &edu); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetOwn(ctx, userID)
}

// RemoveExperience deletes one entry by id from the caller's profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("profile", "This user has no profile")
	}

	rows, err := s.profiles.DeleteExperience(ctx, profile.ID, expID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("Entry not found")
	}
	return s.GetOwn(ctx, userID)
}

// RemoveEducation deletes one entry by id from the caller's profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundFieldError("profile", "This user has no profile")
	}

	rows, err := s.profiles.DeleteEducation(ctx, profile.ID, eduID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("Entry not found")
	}
	return s.GetOwn(ctx, userID)
}

// DeleteAccount removes the caller's user row, profile, and posts atomically.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profiles.DeleteWithUser(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
