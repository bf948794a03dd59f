package server

import (
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type upsertProfileRequest struct {
	Handle         *string `json:"handle"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status"`
	GithubUsername *string `json:"github_username"`
	Skills         *string `json:"skills"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetOwnProfile returns the caller's profile.
func (s *Server) GetOwnProfile(c *fiber.Ctx) error {
	profile, err := s.profiles.GetOwn(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles returns all profiles, newest first.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	profiles, err := s.profiles.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByHandle returns the profile owning the given handle.
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	profile, err := s.profiles.GetByHandle(c.UserContext(), c.Params("handle"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetProfileByUser returns the profile owned by the given user id.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := s.profiles.GetByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile creates the caller's profile or updates the existing one.
// Fields absent from the request keep their stored values.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	// On create every required field must be present; on update only the
	// fields being changed are validated. A store failure is neither: it must
	// not silently route the request down the create path.
	existing, err := s.profiles.GetOwn(c.UserContext(), currentUserID(c))
	if err != nil {
		if appErr, ok := err.(*models.AppError); !ok || appErr.Code != models.CodeNotFound {
			return respondError(c, err)
		}
		existing = nil
	}
	in := validation.ProfileInput{
		Handle: deref(req.Handle),
		Status: deref(req.Status),
		Skills: deref(req.Skills),
	}
	if existing != nil {
		if req.Handle == nil {
			in.Handle = existing.Handle
		}
		if req.Status == nil {
			in.Status = existing.Status
		}
		if req.Skills == nil {
			in.Skills = strings.Join(existing.Skills, ",")
		}
	}
	if errs, ok := validation.ValidateProfileInput(in); !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profiles.Upsert(c.UserContext(), currentUserID(c), service.UpsertInput{
		Handle:         req.Handle,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience adds a work-history entry to the caller's profile and returns
// the updated profile.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	errs, ok := validation.ValidateExperienceInput(validation.ExperienceInput{
		Title:   req.Title,
		Company: req.Company,
		From:    req.From,
		To:      req.To,
		Current: req.Current,
	})
	if !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profiles.AddExperience(c.UserContext(), currentUserID(c), models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation adds an education entry to the caller's profile and returns
// the updated profile.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	errs, ok := validation.ValidateEducationInput(validation.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
	})
	if !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profiles.AddEducation(c.UserContext(), currentUserID(c), models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience removes one experience entry from the caller's profile.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "exp_id")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := s.profiles.RemoveExperience(c.UserContext(), currentUserID(c), expID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation removes one education entry from the caller's profile.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "edu_id")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := s.profiles.RemoveEducation(c.UserContext(), currentUserID(c), eduID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount removes the caller's user, profile, and posts in one
// transaction.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profiles.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User and Profile deleted"})
}
