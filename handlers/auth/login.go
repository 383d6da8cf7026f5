package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/apperrors"
	authutil "github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/response"
	"github.com/moringa/darasa-api/utils/validation"
	"gorm.io/gorm"
)

// LoginRequest represents a login request for either role
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var errBadCredentials = apperrors.AuthInvalid("invalid email or password")

// LoginStudent handles POST /student/login
func (h *AuthHandler) LoginStudent(c *fiber.Ctx) error {
	return h.login(c, authutil.RoleStudent)
}

// LoginAdmin handles POST /admin/login
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	return h.login(c, authutil.RoleAdmin)
}

func (h *AuthHandler) login(c *fiber.Ctx, role authutil.Role) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = validation.SanitizeString(req.Email)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ctx := c.UserContext()
	ip := c.IP()

	id, hash, err := h.lookupCredentials(c, role, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, err)
		}
		// Unknown email is answered like a wrong password
		h.bruteForceProtection.RecordFailedAttempt(ctx, ip)
		return response.FromError(c, errBadCredentials)
	}

	if err := authutil.VerifyPassword(hash, req.Password); err != nil {
		h.bruteForceProtection.RecordFailedAttempt(ctx, ip)
		return response.FromError(c, errBadCredentials)
	}

	h.bruteForceProtection.RecordSuccessfulAttempt(ctx, ip)

	token, _, err := h.jwtManager.Issue(id, req.Email, role)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Success(c, TokenResponse{Message: "Login successful", Token: token})
}

func (h *AuthHandler) lookupCredentials(c *fiber.Ctx, role authutil.Role, email string) (uint, string, error) {
	db := h.db.WithContext(c.UserContext())

	if role == authutil.RoleAdmin {
		var admin model.Admin
		if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
			return 0, "", err
		}
		return admin.ID, admin.PasswordHash, nil
	}

	var student model.Student
	if err := db.Where("email = ?", email).First(&student).Error; err != nil {
		return 0, "", err
	}
	return student.ID, student.PasswordHash, nil
}
