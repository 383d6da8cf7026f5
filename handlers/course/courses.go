package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/services"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
	"github.com/moringa/darasa-api/utils/validation"
)

// CourseHandler handles catalogue, enrollment browsing and course authoring
type CourseHandler struct {
	courses   *services.CourseService
	storage   ObjectStore
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler. storage may be nil, which
// disables thumbnail upload.
func NewCourseHandler(courses *services.CourseService, storage ObjectStore) *CourseHandler {
	return &CourseHandler{
		courses:   courses,
		storage:   storage,
		validator: validation.NewValidator(),
	}
}

// CourseSummary is a catalogue entry
type CourseSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Price       float64 `json:"price"`
}

// CourseDetail is a course as a student browses it
type CourseDetail struct {
	CourseSummary
	AdminEmail string         `json:"admin_email"`
	Modules    []ModuleDetail `json:"modules"`
}

// ModuleDetail is a module without bookkeeping fields
type ModuleDetail struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Media string `json:"media"`
	Notes string `json:"notes"`
}

func summarize(courses []model.Course) []CourseSummary {
	out := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, summary(c))
	}
	return out
}

func summary(c model.Course) CourseSummary {
	return CourseSummary{ID: c.ID, Title: c.Title, Description: c.Description, Thumbnail: c.Thumbnail, Price: c.Price}
}

func modules(ms []model.Module) []ModuleDetail {
	out := make([]ModuleDetail, 0, len(ms))
	for _, m := range ms {
		out = append(out, ModuleDetail{ID: m.ID, Title: m.Title, Media: m.Media, Notes: m.Notes})
	}
	return out
}

func courseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 63)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ListCourses handles GET /course
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courses.ListCourses(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"courses": summarize(courses)})
}

// ListStudentCourses handles GET /courses/student
func (h *CourseHandler) ListStudentCourses(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	courses, err := h.courses.ListStudentCourses(c.UserContext(), principal.ID())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"courses": summarize(courses)})
}

// GetCourse handles GET /student/course/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, ok := courseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.courses.GetCourse(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	detail := CourseDetail{CourseSummary: summary(*course), Modules: modules(course.Modules)}
	if course.Admin != nil {
		detail.AdminEmail = course.Admin.Email
	}
	return response.Success(c, detail)
}

// ListModules handles GET /student/course/:id/module
func (h *CourseHandler) ListModules(c *fiber.Ctx) error {
	id, ok := courseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	ms, err := h.courses.ListModules(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, modules(ms))
}
