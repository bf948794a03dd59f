// Package validation contains pure request-body validators. Each validator
// returns a field→message map and a validity flag; it never touches the
// database or the network.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"devconnect/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isEmpty reports whether s is empty after trimming whitespace.
func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func lengthBetween(s string, min, max int) bool {
	n := len([]rune(strings.TrimSpace(s)))
	return n >= min && n <= max
}

// RegisterInput is the request body for POST /api/users/register.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Password2 string
}

// ValidateRegisterInput checks the registration payload.
func ValidateRegisterInput(in RegisterInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if isEmpty(in.Name) {
		errs["name"] = "Name field is required"
	} else if !lengthBetween(in.Name, 2, 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}

	if isEmpty(in.Email) {
		errs["email"] = "Email field is required"
	} else if !emailRegex.MatchString(strings.TrimSpace(in.Email)) {
		errs["email"] = "Email is invalid"
	}

	if isEmpty(in.Password) {
		errs["password"] = "Password field is required"
	} else if !lengthBetween(in.Password, 6, 30) {
		errs["password"] = "Password must be between 6 and 30 characters"
	}

	if isEmpty(in.Password2) {
		errs["password2"] = "Confirm password field is required"
	} else if in.Password != in.Password2 {
		errs["password2"] = "Passwords must match"
	}

	return errs, len(errs) == 0
}

// LoginInput is the request body for POST /api/users/login.
type LoginInput struct {
	Email    string
	Password string
}

// ValidateLoginInput checks the login payload.
func ValidateLoginInput(in LoginInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if isEmpty(in.Email) {
		errs["email"] = "Email field is required"
	} else if !emailRegex.MatchString(strings.TrimSpace(in.Email)) {
		errs["email"] = "Email is invalid"
	}

	if isEmpty(in.Password) {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}

// ProfileInput carries the fields of the profile upsert payload that are
// subject to validation.
type ProfileInput struct {
	Handle string
	Status string
	Skills string
}

// ValidateProfileInput checks the profile upsert payload.
func ValidateProfileInput(in ProfileInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if isEmpty(in.Handle) {
		errs["handle"] = "Profile handle is required"
	} else if !lengthBetween(in.Handle, 2, 40) {
		errs["handle"] = "Handle must be between 2 and 40 characters"
	}

	if isEmpty(in.Status) {
		errs["status"] = "Status field is required"
	}

	if isEmpty(in.Skills) {
		errs["skills"] = "Skills field is required"
	}

	return errs, len(errs) == 0
}

// ExperienceInput is the request body for POST /api/profile/experience.
type ExperienceInput struct {
	Title   string
	Company string
	From    string
	To      string
	Current bool
}

// ValidateExperienceInput checks an experience entry. A current position must
// leave the end date empty.
func ValidateExperienceInput(in ExperienceInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if isEmpty(in.Title) {
		errs["title"] = "Job title field is required"
	}
	if isEmpty(in.Company) {
		errs["company"] = "Company field is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date field is required"
	}
	if in.Current && !isEmpty(in.To) {
		errs["to"] = "To date must be empty for a current position"
	}

	return errs, len(errs) == 0
}

// EducationInput is the request body for POST /api/profile/education.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
}

// ValidateEducationInput checks an education entry, with the same current/to
// consistency rule as experience.
func ValidateEducationInput(in EducationInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if isEmpty(in.School) {
		errs["school"] = "School field is required"
	}
	if isEmpty(in.Degree) {
		errs["degree"] = "Degree field is required"
	}
	if isEmpty(in.FieldOfStudy) {
		errs["fieldOfStudy"] = "Field of study is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date field is required"
	}
	if in.Current && !isEmpty(in.To) {
		errs["to"] = "To date must be empty for current studies"
	}

	return errs, len(errs) == 0
}

const (
	postTextMin = 10
	postTextMax = 300
)

// ValidatePostInput checks a post or comment body.
func ValidatePostInput(text string) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if isEmpty(text) {
		errs["text"] = "Text field is required"
	} else if !lengthBetween(text, postTextMin, postTextMax) {
		errs["text"] = fmt.Sprintf("Post must be between %d and %d characters", postTextMin, postTextMax)
	}

	return errs, len(errs) == 0
}
