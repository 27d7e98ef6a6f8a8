package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/http/middleware"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

// publishErrorPayload is the 500 body of a failed publish.
type publishErrorPayload struct {
	Success   bool      `json:"success"`
	RequestID string    `json:"request_id"`
	Code      string    `json:"code"`
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	DebugInfo debugInfo `json:"debug_info"`
}

type debugInfo struct {
	HasCompany       bool `json:"hasCompany"`
	HasTenantID      bool `json:"hasTenantId"`
	PayloadSections  bool `json:"payloadSections"`
	PayloadApplyPage bool `json:"payloadApplyPage"`
}

// writeError writes a standardized JSON error response. message must be safe to expose.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Code:      code,
		Error:     message,
	})
}

// details renders err with the stack traces recorded by github.com/pkg/errors.
func details(err error) string {
	var pe *service.PublishError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return fmt.Sprintf("%+v", err)
}

// serviceError maps the service error taxonomy onto a response.
// Anything unrecognized is a 500 that does not leak the underlying message.
func serviceError(c *fiber.Ctx, err error) error {
	var (
		verr *service.ValidationError
		perr *service.PayloadTooLargeError
	)
	switch {
	case errors.Is(err, service.ErrTenantRequired):
		return writeError(c, fiber.StatusBadRequest, "TENANT_REQUIRED", err.Error())
	case errors.Is(err, service.ErrNoContent):
		return writeError(c, fiber.StatusBadRequest, "NO_CONTENT", "No content found to publish. Please save changes first.")
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.As(err, &perr):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", perr.Error())
	case errors.Is(err, service.ErrNotPublished):
		return writeError(c, fiber.StatusNotFound, "NOT_PUBLISHED", err.Error())
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			msg := "bad request"
			if fe != nil && fe.Message != "" {
				msg = fe.Message
			}
			return writeError(c, status, "BAD_REQUEST", msg)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
