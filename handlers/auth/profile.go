package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
	"github.com/moringa/darasa-api/utils/validation"
)

// StudentProfile is the self view of a student
type StudentProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AdminProfile is the self view of an admin
type AdminProfile struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// UpdateStudentProfileRequest changes the username and/or password
type UpdateStudentProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UpdateAdminProfileRequest changes the admin password
type UpdateAdminProfileRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// GetStudentProfile handles GET /profile/student
func (h *AuthHandler) GetStudentProfile(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)
	s := principal.Student
	return response.Success(c, StudentProfile{ID: s.ID, Username: s.Username, Email: s.Email})
}

// UpdateStudentProfile handles POST /profile/student. Email and id are
// never changed.
func (h *AuthHandler) UpdateStudentProfile(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	var req UpdateStudentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username != nil {
		username := validation.SanitizeString(*req.Username)
		req.Username = &username
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Password != nil {
		hash, err := h.hash(*req.Password)
		if err != nil {
			return response.FromError(c, err)
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "Nothing to update")
	}

	err := h.db.WithContext(c.UserContext()).
		Model(&model.Student{ID: principal.Student.ID}).
		Updates(updates).Error
	if err != nil {
		return response.FromError(c, database.TranslateError(err, "", "username already taken"))
	}

	return response.OK(c, "Profile updated successfully")
}

// GetAdminProfile handles GET /profile/admin
func (h *AuthHandler) GetAdminProfile(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)
	return response.Success(c, AdminProfile{ID: principal.Admin.ID, Email: principal.Admin.Email})
}

// UpdateAdminProfile handles POST /profile/admin
func (h *AuthHandler) UpdateAdminProfile(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	var req UpdateAdminProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	hash, err := h.hash(req.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	err = h.db.WithContext(c.UserContext()).
		Model(&model.Admin{ID: principal.Admin.ID}).
		Update("password_hash", hash).Error
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OK(c, "Profile updated successfully")
}
