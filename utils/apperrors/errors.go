package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds. Match them with errors.Is.
var (
	ErrAuthMissing  = errors.New("missing access token")
	ErrAuthInvalid  = errors.New("invalid access token")
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrInternal     = errors.New("internal server error")
	ErrUpstream     = errors.New("upstream service failed")
	ErrUnavailable  = errors.New("service unavailable")
)

type kindInfo struct {
	code   string
	status int
}

var kinds = []struct {
	err  error
	info kindInfo
}{
	{ErrAuthMissing, kindInfo{"AUTH_MISSING", fiber.StatusForbidden}},
	{ErrAuthInvalid, kindInfo{"AUTH_INVALID", fiber.StatusForbidden}},
	{ErrNotFound, kindInfo{"NOT_FOUND", fiber.StatusNotFound}},
	{ErrValidation, kindInfo{"VALIDATION_FAILED", fiber.StatusBadRequest}},
	{ErrConflict, kindInfo{"CONFLICT", fiber.StatusConflict}},
	{ErrUnauthorized, kindInfo{"UNAUTHORIZED", fiber.StatusForbidden}},
	{ErrUpstream, kindInfo{"UPSTREAM", fiber.StatusBadGateway}},
	{ErrUnavailable, kindInfo{"UNAVAILABLE", fiber.StatusServiceUnavailable}},
	{ErrInternal, kindInfo{"INTERNAL", fiber.StatusInternalServerError}},
}

// Error carries a kind, a client-facing message and an optional cause
type Error struct {
	Err     error
	Message string
	Cause   error
	Details interface{}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Wrap returns a copy of e that records cause
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// WithDetails returns a copy of e carrying extra client-facing data
func (e *Error) WithDetails(details interface{}) *Error {
	c := *e
	c.Details = details
	return &c
}

func newError(kind error, message string) *Error {
	return &Error{Err: kind, Message: message}
}

func AuthMissing(message string) *Error  { return newError(ErrAuthMissing, message) }
func AuthInvalid(message string) *Error  { return newError(ErrAuthInvalid, message) }
func NotFound(message string) *Error     { return newError(ErrNotFound, message) }
func Validation(message string) *Error   { return newError(ErrValidation, message) }
func Conflict(message string) *Error     { return newError(ErrConflict, message) }
func Unauthorized(message string) *Error { return newError(ErrUnauthorized, message) }
func Unavailable(message string) *Error  { return newError(ErrUnavailable, message) }

// Upstream marks a failure of an external collaborator such as the payment gateway
func Upstream(message string, cause error) *Error {
	return newError(ErrUpstream, message).Wrap(cause)
}

// Internal hides cause behind a generic message
func Internal(cause error) *Error {
	return &Error{Err: ErrInternal, Message: ErrInternal.Error(), Cause: cause}
}

func lookup(err error) kindInfo {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.info
		}
	}
	return kindInfo{"INTERNAL", fiber.StatusInternalServerError}
}

// Code returns the machine-readable kind of err, INTERNAL for untyped errors
func Code(err error) string {
	return lookup(err).code
}

// Status returns the HTTP status for err
func Status(err error) int {
	return lookup(err).status
}

// Message returns the text safe to show a client. Untyped and internal
// errors never leak their cause.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && !errors.Is(appErr.Err, ErrInternal) {
		return appErr.Error()
	}
	return ErrInternal.Error()
}
