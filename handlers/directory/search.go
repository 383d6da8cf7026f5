package directory

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/services"
	"github.com/moringa/darasa-api/utils/response"
)

// DirectoryHandler looks up principals by email
type DirectoryHandler struct {
	directory *services.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directory *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// SearchAdmins handles GET /admins?email=
func (h *DirectoryHandler) SearchAdmins(c *fiber.Ctx) error {
	admins, err := h.directory.SearchAdmins(c.UserContext(), c.Query("email"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"admins": admins})
}

// SearchStudents handles GET /studentsmail?email=
func (h *DirectoryHandler) SearchStudents(c *fiber.Ctx) error {
	students, err := h.directory.SearchStudents(c.UserContext(), c.Query("email"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"students": students})
}
