package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/apperrors"
	authutil "github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
	"github.com/moringa/darasa-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles signup, login, profile and logout for both roles
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
	bcryptCost           int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, blacklist *authutil.BlacklistService, bruteForceProtection *middleware.BruteForceProtection, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     blacklist,
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
		bcryptCost:           bcryptCost,
	}
}

// StudentSignupRequest is the body of POST /signup/student
type StudentSignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,max=64"`
}

// AdminSignupRequest is the body of POST /signup/admin
type AdminSignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// TokenResponse is returned by every signup and login
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SignupStudent handles POST /signup/student
func (h *AuthHandler) SignupStudent(c *fiber.Ctx) error {
	var req StudentSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = validation.SanitizeString(req.Email)
	req.Username = validation.SanitizeString(req.Username)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	hash, err := h.hash(req.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	student := model.Student{Email: req.Email, Username: req.Username, PasswordHash: hash}
	if err := h.db.WithContext(c.UserContext()).Create(&student).Error; err != nil {
		return response.FromError(c, database.TranslateError(err, "", "email or username already registered"))
	}

	token, _, err := h.jwtManager.Issue(student.ID, student.Email, authutil.RoleStudent)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Created(c, TokenResponse{Message: "Student created successfully", Token: token})
}

// SignupAdmin handles POST /signup/admin
func (h *AuthHandler) SignupAdmin(c *fiber.Ctx) error {
	var req AdminSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = validation.SanitizeString(req.Email)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	hash, err := h.hash(req.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	admin := model.Admin{Email: req.Email, PasswordHash: hash}
	if err := h.db.WithContext(c.UserContext()).Create(&admin).Error; err != nil {
		return response.FromError(c, database.TranslateError(err, "", "email already registered"))
	}

	token, _, err := h.jwtManager.Issue(admin.ID, admin.Email, authutil.RoleAdmin)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Created(c, TokenResponse{Message: "Admin created successfully", Token: token})
}

func (h *AuthHandler) hash(password string) (string, error) {
	hash, err := authutil.HashPassword(password, h.bcryptCost)
	if errors.Is(err, authutil.ErrPasswordTooShort) {
		return "", apperrors.Validation(err.Error())
	}
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return hash, nil
}
