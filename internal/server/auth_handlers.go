package server

import (
	"strconv"
	"time"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user account. The avatar defaults to the gravatar
// for the given email and the password is stored as a bcrypt hash only.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	errs, ok := validation.ValidateRegisterInput(validation.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Avatar:   gravatar.URL(req.Email),
	}
	if err := s.users.Create(c.UserContext(), user); err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			return respondError(c, appErr)
		}
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(user)
}

// Login verifies credentials and returns a signed bearer token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	errs, ok := validation.ValidateLoginInput(validation.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	user, err := s.users.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: models.CodeNotFound, Field: "email", Message: "User not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			&models.AppError{Code: models.CodeValidation, Field: "password", Message: "Password incorrect"})
	}

	token, err := s.generateToken(user)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   "Bearer " + token,
	})
}

// CurrentUser echoes the authenticated user's public fields.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	user, err := s.users.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	if user == nil {
		return respondError(c, models.NewUnauthorizedError("User not authorized"))
	}

	return c.JSON(fiber.Map{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
	})
}

func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(uint64(user.ID), 10),
		"name":   user.Name,
		"avatar": user.Avatar,
		"iss":    tokenIssuer,
		"aud":    tokenAudience,
		"exp":    now.Add(time.Duration(s.Config.TokenTTLSeconds) * time.Second).Unix(),
		"iat":    now.Unix(),
		"jti":    uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Config.JWTSecret))
}
