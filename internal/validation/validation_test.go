package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegisterInput(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		errs, ok := ValidateRegisterInput(RegisterInput{
			Name:      "Alice Doe",
			Email:     "alice@example.com",
			Password:  "secret1",
			Password2: "secret1",
		})
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("all fields missing", func(t *testing.T) {
		errs, ok := ValidateRegisterInput(RegisterInput{})
		assert.False(t, ok)
		assert.Equal(t, "Name field is required", errs["name"])
		assert.Equal(t, "Email field is required", errs["email"])
		assert.Equal(t, "Password field is required", errs["password"])
		assert.Equal(t, "Confirm password field is required", errs["password2"])
	})

	t.Run("name too short", func(t *testing.T) {
		errs, ok := ValidateRegisterInput(RegisterInput{
			Name:      "A",
			Email:     "alice@example.com",
			Password:  "secret1",
			Password2: "secret1",
		})
		assert.False(t, ok)
		assert.Equal(t, "Name must be between 2 and 30 characters", errs["name"])
	})

	t.Run("invalid email", func(t *testing.T) {
		errs, ok := ValidateRegisterInput(RegisterInput{
			Name:      "Alice",
			Email:     "not-an-email",
			Password:  "secret1",
			Password2: "secret1",
		})
		assert.False(t, ok)
		assert.Equal(t, "Email is invalid", errs["email"])
	})

	t.Run("password too short", func(t *testing.T) {
		errs, ok := ValidateRegisterInput(RegisterInput{
			Name:      "Alice",
			Email:     "alice@example.com",
			Password:  "short",
			Password2: "short",
		})
		assert.False(t, ok)
		assert.Equal(t, "Password must be between 6 and 30 characters", errs["password"])
	})

	t.Run("passwords do not match", func(t *testing.T) {
		errs, ok := ValidateRegisterInput(RegisterInput{
			Name:      "Alice",
			Email:     "alice@example.com",
			Password:  "secret1",
			Password2: "secret2",
		})
		assert.False(t, ok)
		assert.Equal(t, "Passwords must match", errs["password2"])
	})
}

func TestValidateLoginInput(t *testing.T) {
	errs, ok := ValidateLoginInput(LoginInput{Email: "alice@example.com", Password: "secret1"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateLoginInput(LoginInput{})
	assert.False(t, ok)
	assert.Equal(t, "Email field is required", errs["email"])
	assert.Equal(t, "Password field is required", errs["password"])

	errs, ok = ValidateLoginInput(LoginInput{Email: "bad", Password: "secret1"})
	assert.False(t, ok)
	assert.Equal(t, "Email is invalid", errs["email"])
}

func TestValidateProfileInput(t *testing.T) {
	errs, ok := ValidateProfileInput(ProfileInput{Handle: "alice", Status: "Developer", Skills: "Go,SQL"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateProfileInput(ProfileInput{})
	assert.False(t, ok)
	assert.Equal(t, "Profile handle is required", errs["handle"])
	assert.Equal(t, "Status field is required", errs["status"])
	assert.Equal(t, "Skills field is required", errs["skills"])

	errs, ok = ValidateProfileInput(ProfileInput{Handle: "a", Status: "Dev", Skills: "Go"})
	assert.False(t, ok)
	assert.Equal(t, "Handle must be between 2 and 40 characters", errs["handle"])

	long := strings.Repeat("x", 41)
	errs, ok = ValidateProfileInput(ProfileInput{Handle: long, Status: "Dev", Skills: "Go"})
	assert.False(t, ok)
	assert.Equal(t, "Handle must be between 2 and 40 characters", errs["handle"])
}

func TestValidateExperienceInput(t *testing.T) {
	errs, ok := ValidateExperienceInput(ExperienceInput{Title: "Engineer", Company: "Acme", From: "2020-01-01"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateExperienceInput(ExperienceInput{})
	assert.False(t, ok)
	assert.Equal(t, "Job title field is required", errs["title"])
	assert.Equal(t, "Company field is required", errs["company"])
	assert.Equal(t, "From date field is required", errs["from"])

	errs, ok = ValidateExperienceInput(ExperienceInput{
		Title: "Engineer", Company: "Acme", From: "2020-01-01",
		Current: true, To: "2022-01-01",
	})
	assert.False(t, ok)
	assert.Equal(t, "To date must be empty for a current position", errs["to"])
}

func TestValidateEducationInput(t *testing.T) {
	errs, ok := ValidateEducationInput(EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2016-09-01",
	})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidateEducationInput(EducationInput{})
	assert.False(t, ok)
	assert.Equal(t, "School field is required", errs["school"])
	assert.Equal(t, "Degree field is required", errs["degree"])
	assert.Equal(t, "Field of study is required", errs["fieldOfStudy"])
	assert.Equal(t, "From date field is required", errs["from"])

	errs, ok = ValidateEducationInput(EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2016-09-01",
		Current: true, To: "2020-06-01",
	})
	assert.False(t, ok)
	assert.Equal(t, "To date must be empty for current studies", errs["to"])
}

func TestValidatePostInput(t *testing.T) {
	errs, ok := ValidatePostInput("This is a perfectly fine post")
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = ValidatePostInput("")
	assert.False(t, ok)
	assert.Equal(t, "Text field is required", errs["text"])

	errs, ok = ValidatePostInput("too short")
	assert.False(t, ok)
	assert.Equal(t, "Post must be between 10 and 300 characters", errs["text"])

	errs, ok = ValidatePostInput(strings.Repeat("a", 301))
	assert.False(t, ok)
	assert.Equal(t, "Post must be between 10 and 300 characters", errs["text"])

	// Boundary lengths are accepted.
	_, ok = ValidatePostInput(strings.Repeat("a", 10))
	assert.True(t, ok)
	_, ok = ValidatePostInput(strings.Repeat("a", 300))
	assert.True(t, ok)
}
