package checkout

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/services"
	"github.com/moringa/darasa-api/services/receipt"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
)

// ReceiptFilename is the attachment name of every receipt download
const ReceiptFilename = "course_receipt.pdf"

// CheckoutHandler handles purchase and receipt download
type CheckoutHandler struct {
	enrollments *services.EnrollmentService
	renderer    receipt.Renderer
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(enrollments *services.EnrollmentService, renderer receipt.Renderer) *CheckoutHandler {
	return &CheckoutHandler{enrollments: enrollments, renderer: renderer}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Checkout handles GET /checkout/:course_id
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	courseID, ok := parseID(c.Params("course_id"))
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	session, err := h.enrollments.Checkout(c.UserContext(), principal.Student, courseID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, fiber.Map{"checkout_url": session.RedirectURL})
}

// Success handles GET /success?course_id= by streaming a PDF receipt for
// an existing enrollment
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	courseID, ok := parseID(c.Query("course_id"))
	if !ok {
		return response.BadRequest(c, "course_id is required")
	}

	enrollment, err := h.enrollments.Enrollment(c.UserContext(), principal.ID(), courseID)
	if err != nil {
		return response.FromError(c, err)
	}
	if enrollment.Course == nil {
		return response.NotFound(c, "course not found")
	}

	pdf, err := h.renderer.Render(receipt.Receipt{
		StudentName: principal.Student.Username,
		Email:       principal.Student.Email,
		CourseTitle: enrollment.Course.Title,
		Price:       enrollment.Course.Price,
		PurchasedAt: enrollment.EnrolledAt,
	})
	if err != nil {
		return response.InternalServerError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+ReceiptFilename)
	return c.Status(fiber.StatusOK).Send(pdf)
}

// Cancel handles GET /cancel
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	return response.OK(c, "Purchase canceled")
}
