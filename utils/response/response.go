package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/utils/apperrors"
	"github.com/moringa/darasa-api/utils/logger"
)

// ErrorBody is the JSON shape of every failed request
type ErrorBody struct {
	Error   string      `json:"ERROR"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Message is the body of endpoints that only acknowledge
type Message struct {
	Message string `json:"message"`
}

// Success returns a 200 response with data as the body
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// OK acknowledges with a message
func OK(c *fiber.Ctx, message string) error {
	return Success(c, Message{Message: message})
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string, code string) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message, Code: code})
}

// FromError renders err using its kind. Internal failures are logged with
// the request id and answered with a generic message.
func FromError(c *fiber.Ctx, err error) error {
	status := apperrors.Status(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error().
			Err(err).
			Interface("request_id", c.Locals("requestid")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}

	body := ErrorBody{Error: apperrors.Message(err), Code: apperrors.Code(err)}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Details != nil {
		body.Details = appErr.Details
	}
	return c.Status(status).JSON(body)
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return FromError(c, apperrors.Validation(message))
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return FromError(c, apperrors.NotFound(message))
}

// Conflict returns a 409 Conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return FromError(c, apperrors.Conflict(message))
}

// Forbidden returns a 403 response for a role or ownership mismatch
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return FromError(c, apperrors.Unauthorized(message))
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message, "TOO_MANY_REQUESTS")
}

// ValidationError returns a 400 with one message per offending field
func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return FromError(c, apperrors.Validation("Validation failed").WithDetails(fields))
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, err error) error {
	return FromError(c, apperrors.Internal(err))
}
