package message

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/services"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
	"github.com/moringa/darasa-api/utils/validation"
)

// MessageHandler handles messages between students and admins
type MessageHandler struct {
	messages  *services.MessageService
	validator *validation.Validator
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages, validator: validation.NewValidator()}
}

// StudentMessageRequest is the body of POST /messages/student
type StudentMessageRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	AdminID uint   `json:"admin_id" validate:"required,max=9223372036854775807"`
}

// AdminMessageRequest is the body of POST /messages/admin
type AdminMessageRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Email   string `json:"email" validate:"required"`
}

// SendToAdmin handles POST /messages/student
func (h *MessageHandler) SendToAdmin(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	var req StudentMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	msg, err := h.messages.SendToAdmin(c.UserContext(), principal.ID(), req.AdminID, req.Title, req.Content)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, fiber.Map{"message": "Message sent successfully", "message_id": msg.ID})
}

// SendToStudent handles POST /messages/admin
func (h *MessageHandler) SendToStudent(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	var req AdminMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	msg, err := h.messages.SendToStudent(c.UserContext(), principal.ID(), req.Email, req.Title, req.Content)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, fiber.Map{"message": "Message sent successfully", "message_id": msg.ID})
}

// AdminInbox handles GET /messages/admin
func (h *MessageHandler) AdminInbox(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	entries, err := h.messages.AdminInbox(c.UserContext(), principal.ID())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, entries)
}

// StudentInbox handles GET /messages/from-admin
func (h *MessageHandler) StudentInbox(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	entries, err := h.messages.StudentInbox(c.UserContext(), principal.ID())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, entries)
}

// SentByStudent handles GET /messages/student/sent
func (h *MessageHandler) SentByStudent(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	entries, err := h.messages.SentByStudent(c.UserContext(), principal.ID())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, entries)
}

// SentByAdmin handles GET /messages/admin/sent
func (h *MessageHandler) SentByAdmin(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)

	entries, err := h.messages.SentByAdmin(c.UserContext(), principal.ID())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, entries)
}
