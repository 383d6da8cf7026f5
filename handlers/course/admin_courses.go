package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/services"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
	"github.com/moringa/darasa-api/utils/validation"
)

// ListAdminCourses handles GET /courses/admin
func (h *CourseHandler) ListAdminCourses(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	courses, err := h.courses.ListAdminCourses(c.UserContext(), principal.ID())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"courses": courses})
}

// CreateCourse handles POST /courses/admin
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	var req services.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	course, err := h.courses.CreateCourse(c.UserContext(), principal.ID(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, fiber.Map{
		"message":   "Course created successfully",
		"course_id": course.ID,
	})
}

// UpdateCourse handles PATCH /courses/admin
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	var req services.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	course, err := h.courses.UpdateCourse(c.UserContext(), principal.ID(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// DeleteCourse handles DELETE /courses/admin/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	id, ok := courseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	if err := h.courses.DeleteCourse(c.UserContext(), principal.ID(), id); err != nil {
		return response.FromError(c, err)
	}

	return response.OK(c, "Course deleted successfully")
}
